package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudcore/internal/game"
	"github.com/pixil98/go-mudcore/internal/storage"
)

type DataConfig struct {
	Rooms        AssetConfig `json:"rooms"`
	MobTemplates AssetConfig `json:"mob_templates"`
}

func (c *DataConfig) BuildDictionary() (*game.Dictionary, error) {
	rooms, err := storage.NewFileStore[game.RoomId, *game.Room](c.Rooms.Path)
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	templates, err := storage.NewFileStore[game.MobTemplateId, *game.MobTemplate](c.MobTemplates.Path)
	if err != nil {
		return nil, fmt.Errorf("creating mob template store: %w", err)
	}

	return game.NewDictionary(rooms, templates)
}

func (c *DataConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("data: rooms"))
	el.Add(c.MobTemplates.Validate("data: mob_templates"))
	return el.Err()
}

// AssetConfig points at a yaml file or a directory of them.
type AssetConfig struct {
	Path string `json:"path"`
}

func (c *AssetConfig) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

type delivered struct {
	ids      []PlayerId
	payloads map[PlayerId]Payload
}

func flush(o *Output) delivered {
	d := delivered{payloads: map[PlayerId]Payload{}}
	o.Flush(func(id PlayerId, p Payload) {
		d.ids = append(d.ids, id)
		d.payloads[id] = p
	})
	return d
}

func TestOutput_TellKeepsOrder(t *testing.T) {
	w := newTestWorld(t, testRooms(), testTemplates())
	o := NewOutput(w)

	o.Tell(1, TextLine("one"))
	o.Tell(1, TextLine("two"), TextLine("three"))

	d := flush(o)
	lines := d.payloads[1].Lines
	testutil.AssertEqual(t, "line count", len(lines), 3)
	testutil.AssertEqual(t, "first", lines[0].String(), "one")
	testutil.AssertEqual(t, "last", lines[2].String(), "three")
	testutil.AssertEqual(t, "no snapshot", d.payloads[1].Room == nil, true)

	testutil.AssertEqual(t, "cleared", len(flush(o).ids), 0)
}

func TestOutput_TellRoom(t *testing.T) {
	w := newTestWorld(t, testRooms(), testTemplates())
	o := NewOutput(w)
	w.Players.Insert(Player{Id: 1, Name: "Ann", RoomId: 0, Hp: 10, MaxHp: 10})
	w.Players.Insert(Player{Id: 2, Name: "Bob", RoomId: 0, Hp: 10, MaxHp: 10})
	w.Players.Insert(Player{Id: 3, Name: "Cid", RoomId: 1, Hp: 10, MaxHp: 10})
	flush(o)

	o.TellRoom(0, TextLine("everyone"))
	o.TellRoomExcept(0, 1, TextLine("not ann"))

	d := flush(o)
	testutil.AssertEqual(t, "recipients", len(d.ids), 2)
	testutil.AssertEqual(t, "ann lines", len(d.payloads[1].Lines), 1)
	testutil.AssertEqual(t, "bob lines", len(d.payloads[2].Lines), 2)
	testutil.AssertEqual(t, "bob second", d.payloads[2].Lines[1].String(), "not ann")
}

func TestOutput_RoomChangeSendsSnapshot(t *testing.T) {
	w := newTestWorld(t, testRooms(), testTemplates())
	o := NewOutput(w)
	if err := w.InitializeMobs(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Players.Insert(Player{Id: 1, Name: "Ann", RoomId: 0, Hp: 10, MaxHp: 10})
	w.Players.Insert(Player{Id: 2, Name: "Bob", RoomId: 1, Hp: 10, MaxHp: 10})
	flush(o)

	w.Players.Modify(2, func(p *Player) { p.RoomId = 0 })

	d := flush(o)
	testutil.AssertEqual(t, "recipients", len(d.ids), 2)
	testutil.AssertEqual(t, "id order", d.ids[0], PlayerId(1))

	snap := d.payloads[1].Room
	if snap == nil {
		t.Fatal("expected snapshot for ann")
	}
	testutil.AssertEqual(t, "self", snap.Self.Name, "Ann")
	testutil.AssertEqual(t, "others", len(snap.Others), 1)
	testutil.AssertEqual(t, "other name", snap.Others[0].Name, "Bob")
	testutil.AssertEqual(t, "mobs", len(snap.Mobs), 1)
	testutil.AssertEqual(t, "mob hp", snap.Mobs[0].Hp, 10)
}

func TestOutput_VitalsChangeSendsSnapshot(t *testing.T) {
	w := newTestWorld(t, testRooms(), testTemplates())
	o := NewOutput(w)
	w.Players.Insert(Player{Id: 1, Name: "Ann", RoomId: 0, Hp: 10, MaxHp: 10})
	w.Players.Insert(Player{Id: 2, Name: "Bob", RoomId: 1, Hp: 10, MaxHp: 10})
	flush(o)

	w.Players.Modify(1, func(p *Player) { p.Hp = 3 })

	d := flush(o)
	testutil.AssertEqual(t, "recipients", len(d.ids), 1)
	testutil.AssertEqual(t, "hp", d.payloads[1].Room.Self.Hp, 3)
}

func TestOutput_DepartedPlayerGetsNoSnapshot(t *testing.T) {
	w := newTestWorld(t, testRooms(), testTemplates())
	o := NewOutput(w)
	w.Players.Insert(Player{Id: 1, Name: "Ann", RoomId: 0, Hp: 10, MaxHp: 10})
	flush(o)

	o.MarkPlayerChanged(1)
	w.Players.Remove(1)

	testutil.AssertEqual(t, "recipients", len(flush(o).ids), 0)
}

func TestWorld_DescribeRoom(t *testing.T) {
	w := newTestWorld(t, testRooms(), testTemplates())
	if err := w.InitializeMobs(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Players.Insert(Player{Id: 1, Name: "Ann", RoomId: 1})
	w.Players.Insert(Player{Id: 2, Name: "Bob", RoomId: 1})

	alley, _ := w.Rooms.Get(1)
	lines := w.DescribeRoom(1, alley)

	testutil.AssertEqual(t, "line count", len(lines), 4)
	testutil.AssertEqual(t, "name", lines[0].String(), "Alley")
	testutil.AssertEqual(t, "bold name", *lines[0].Spans[0].Bold, true)
	testutil.AssertEqual(t, "description", lines[1].String(), "A narrow alley.")
	testutil.AssertEqual(t, "occupants", lines[2].String(), "You see Bob, a rat and a rat here.")
	testutil.AssertEqual(t, "exits", lines[3].String(), "You can go south from here.")
}

func TestWorld_DescribeRoomWithoutExits(t *testing.T) {
	w := newTestWorld(t, decodeRooms(t, scriptedRoomsYaml), nil)
	pit, _ := w.Rooms.Get(2)

	lines := w.DescribeRoom(1, pit)
	testutil.AssertEqual(t, "line count", len(lines), 2)
	testutil.AssertEqual(t, "no exits", lines[1].String(), "There are no exits here.")
}

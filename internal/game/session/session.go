// Package session wires the world index, catalog, player, and persistence
// store into one playable state machine. The command layer calls into it;
// nothing above it touches the core packages directly.
package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forgottenship/game/internal/game/combat"
	"github.com/forgottenship/game/internal/game/dice"
	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/nav"
	"github.com/forgottenship/game/internal/game/placement"
	"github.com/forgottenship/game/internal/game/player"
	"github.com/forgottenship/game/internal/game/puzzle"
	"github.com/forgottenship/game/internal/game/world"
	"github.com/forgottenship/game/internal/state"
)

// FlashlightItem is the tool that widens the visibility set while carried.
const FlashlightItem = "Flashlight"

var (
	// ErrItemNotHere rejects picking up an item that is neither on the floor
	// here nor placed at a visible coordinate.
	ErrItemNotHere = errors.New("item is not here")
	// ErrNoDoorHere rejects using a door while not standing on a door tile.
	ErrNoDoorHere = errors.New("no door here")
	// ErrDoorLocked rejects crossing a locked door without its key.
	ErrDoorLocked = errors.New("door is locked")
	// ErrNotUsable rejects using an item that has no use action.
	ErrNotUsable = errors.New("item cannot be used")
)

// Options configures a fresh session when no save document exists.
type Options struct {
	// PlayerName is the explorer's display name; empty uses the default.
	PlayerName string
	// Spawn is the starting coordinate for a fresh game.
	Spawn world.Coordinate
	// Capacity is the pack's carry capacity; zero or negative uses the
	// default.
	Capacity int
}

// Session is the single-player game state. It is not safe for concurrent
// use; the command loop is the only caller.
type Session struct {
	id       string
	logger   *zap.Logger
	idx      *world.Index
	catalog  *inventory.Catalog
	resolver *nav.Resolver
	store    *state.Store
	src      dice.Source
	opts     Options

	explorer *player.Player
	items    placement.Placement
	boxes    map[string][]string
	tasks    *puzzle.TaskSet
	flags    map[string]bool
}

// New builds a session over the given deck and reconciles it against the
// on-disk documents: a valid save restores the explorer, an absent or
// rejected one starts fresh at opts.Spawn, and item placement is generated
// and written back exactly once when the settings document lacks it.
//
// Precondition: deck, catalog, store, src, and logger must be non-nil;
// opts.Spawn must belong to a room.
func New(deck *world.Deck, catalog *inventory.Catalog, store *state.Store, src dice.Source, opts Options, logger *zap.Logger) (*Session, error) {
	idx, err := world.NewIndex(deck)
	if err != nil {
		return nil, fmt.Errorf("indexing deck: %w", err)
	}
	if _, ok := idx.RoomAt(opts.Spawn); !ok {
		return nil, fmt.Errorf("spawn %s belongs to no room", opts.Spawn)
	}
	if opts.Capacity <= 0 {
		opts.Capacity = inventory.DefaultCapacity
	}

	s := &Session{
		id:       uuid.NewString(),
		logger:   logger,
		idx:      idx,
		catalog:  catalog,
		resolver: nav.NewResolver(idx),
		store:    store,
		src:      src,
		opts:     opts,
		boxes:    make(map[string][]string),
		flags:    make(map[string]bool),
	}
	if err := s.restore(deck); err != nil {
		return nil, err
	}
	return s, nil
}

// restore loads both documents and rebuilds the in-memory state from them.
func (s *Session) restore(deck *world.Deck) error {
	settings := s.store.LoadSettings()
	s.items = settings.ItemPositions
	// Only a document that never recorded placements triggers generation.
	// An empty table means everything was collected; regenerating would
	// resurrect consumed items.
	if !settings.HasItemPositions {
		s.items = placement.Generate(s.catalog, deck, s.src, s.logger)
		settings.ItemPositions = s.items
		settings.HasItemPositions = true
		if err := s.store.WriteSettings(settings); err != nil {
			s.logger.Warn("could not persist generated item placement", zap.Error(err))
		} else {
			s.logger.Info("generated item placement", zap.Int("rooms", len(s.items)))
		}
	}
	s.tasks = puzzle.NewTaskSet(settings.CompletedTasks)
	if settings.DialogueFlags != nil {
		s.flags = settings.DialogueFlags
	}

	save, ok := s.store.LoadSave()
	if !ok {
		s.explorer = player.New(s.opts.PlayerName, s.opts.Spawn, s.catalog, s.opts.Capacity)
		s.explorer.MarkExplored(s.explorer.Position)
		s.logger.Info("starting fresh session",
			zap.String("session", s.id),
			zap.String("spawn", s.opts.Spawn.String()))
		return nil
	}

	p := player.New(save.Name, save.Position, s.catalog, s.opts.Capacity)
	p.Health = save.Health
	p.HasFlashlight = save.HasFlashlight
	for _, name := range save.Inventory {
		if err := p.Pack.Add(name); err != nil {
			s.logger.Warn("dropping saved inventory entry", zap.String("item", name), zap.Error(err))
		}
	}
	for _, c := range save.Explored {
		p.MarkExplored(c)
	}
	for _, c := range settings.VisitedCoords {
		p.MarkExplored(c)
	}
	for _, c := range save.Doors {
		p.MarkDoor(c)
	}
	p.MarkExplored(p.Position)
	s.explorer = p

	s.idx.ResetCompartments(save.RoomItems)
	if save.MagicStorage != nil {
		s.boxes = save.MagicStorage
	}

	// An item the explorer already holds, dropped, or boxed is no longer
	// waiting on a tile.
	for _, name := range p.Pack.Items() {
		s.items.Remove(name)
	}
	for _, names := range s.idx.Compartments() {
		for _, name := range names {
			s.items.Remove(name)
		}
	}
	for _, names := range s.boxes {
		for _, name := range names {
			s.items.Remove(name)
		}
	}

	s.logger.Info("restored session from save",
		zap.String("session", s.id),
		zap.String("position", p.Position.String()),
		zap.Int("health", p.Health))
	return nil
}

// ID returns the session's unique identifier, used in log fields.
func (s *Session) ID() string {
	return s.id
}

// Player returns the explorer's state.
func (s *Session) Player() *player.Player {
	return s.explorer
}

// Index returns the spatial index.
func (s *Session) Index() *world.Index {
	return s.idx
}

// Catalog returns the item catalog.
func (s *Session) Catalog() *inventory.Catalog {
	return s.catalog
}

// Move advances the explorer up to steps tiles in the given direction,
// marking every committed tile as explored. A locked door aborts the call
// but committed steps stand.
func (s *Session) Move(dir nav.Direction, steps int) nav.Result {
	start := s.explorer.Position
	res := s.resolver.Move(start, dir, steps, s.explorer)

	if dCol, dRow, ok := dir.Delta(); ok {
		pos := start
		for i := 0; i < res.Steps; i++ {
			pos, _ = pos.Offset(dCol, dRow)
			s.explorer.MarkExplored(pos)
		}
	}
	s.explorer.Position = res.Position
	s.observeDoors()

	s.logger.Debug("move resolved",
		zap.String("direction", string(dir)),
		zap.Int("requested", steps),
		zap.Int("committed", res.Steps),
		zap.String("outcome", res.Outcome.String()),
		zap.String("position", res.Position.String()))
	return res
}

// View is what the explorer can see from the current tile.
type View struct {
	// RoomName and Description identify the current room.
	RoomName    string
	Description string
	// Visible lists the visible coordinates in row-major order.
	Visible []world.Coordinate
	// ItemsInSight maps placed item names to their visible coordinates.
	ItemsInSight map[string]world.Coordinate
	// FloorItems lists items lying loose in the current room.
	FloorItems []string
}

// Look reports the current room and everything visible from the explorer's
// tile. Doors inside the visible set are recorded for the map display.
func (s *Session) Look() View {
	room, _ := s.idx.RoomAt(s.explorer.Position)
	vis := world.VisibleTiles(s.idx, s.explorer.Position, s.explorer.HasFlashlight)
	s.observeDoors()

	v := View{
		RoomName:     room.Name,
		Description:  room.Description,
		Visible:      sortedCoords(vis),
		ItemsInSight: make(map[string]world.Coordinate),
		FloorItems:   s.idx.Compartment(room.Name),
	}
	for name, coord := range s.items[room.Name] {
		if vis[coord] {
			v.ItemsInSight[name] = coord
		}
	}
	return v
}

// Pickup moves an item into the pack, either from the current room's floor
// or from a visible placed coordinate. Capacity and duplicate rules apply;
// a rejected pickup leaves the item where it was.
func (s *Session) Pickup(name string) error {
	room, _ := s.idx.RoomAt(s.explorer.Position)

	if s.idx.Remove(room.Name, name) {
		if err := s.explorer.Pack.Add(name); err != nil {
			if depErr := s.idx.Deposit(room.Name, name); depErr != nil {
				s.logger.Error("could not return item to floor",
					zap.String("item", name), zap.Error(depErr))
			}
			return err
		}
		s.afterPickup(name)
		return nil
	}

	roomName, coord, ok := s.items.Find(name)
	if !ok || roomName != room.Name {
		return fmt.Errorf("%w: %q", ErrItemNotHere, name)
	}
	vis := world.VisibleTiles(s.idx, s.explorer.Position, s.explorer.HasFlashlight)
	if !vis[coord] {
		return fmt.Errorf("%w: %q", ErrItemNotHere, name)
	}
	if err := s.explorer.Pack.Add(name); err != nil {
		return err
	}
	s.items.Remove(name)
	s.afterPickup(name)
	return nil
}

func (s *Session) afterPickup(name string) {
	if name == FlashlightItem {
		s.explorer.HasFlashlight = true
	}
	s.logger.Info("picked up item",
		zap.String("item", name),
		zap.Int("carried", s.explorer.Pack.Used()),
		zap.Int("capacity", s.explorer.Pack.Capacity()))
}

// Drop moves a held item onto the current room's floor.
func (s *Session) Drop(name string) error {
	room, _ := s.idx.RoomAt(s.explorer.Position)
	if err := s.explorer.Pack.Remove(name); err != nil {
		return err
	}
	if err := s.idx.Deposit(room.Name, name); err != nil {
		return err
	}
	if name == FlashlightItem {
		s.explorer.HasFlashlight = false
	}
	s.logger.Info("dropped item", zap.String("item", name), zap.String("room", room.Name))
	return nil
}

// StoreInBox moves a held item into a named storage box. Boxed items do not
// count against carry capacity and survive saves.
func (s *Session) StoreInBox(box, name string) error {
	if err := s.explorer.Pack.Remove(name); err != nil {
		return err
	}
	if name == FlashlightItem {
		s.explorer.HasFlashlight = false
	}
	s.boxes[box] = append(s.boxes[box], name)
	s.logger.Info("stored item", zap.String("item", name), zap.String("box", box))
	return nil
}

// TakeFromBox moves an item from a storage box back into the pack. Capacity
// rules apply; a rejected take leaves the item boxed.
func (s *Session) TakeFromBox(box, name string) error {
	held := s.boxes[box]
	at := -1
	for i, n := range held {
		if n == name {
			at = i
			break
		}
	}
	if at < 0 {
		return fmt.Errorf("%w: %q is not in %q", ErrItemNotHere, name, box)
	}
	if err := s.explorer.Pack.Add(name); err != nil {
		return err
	}
	s.boxes[box] = append(held[:at], held[at+1:]...)
	if len(s.boxes[box]) == 0 {
		delete(s.boxes, box)
	}
	s.afterPickup(name)
	return nil
}

// Boxes returns a snapshot of the storage boxes and their contents.
func (s *Session) Boxes() map[string][]string {
	out := make(map[string][]string, len(s.boxes))
	for box, names := range s.boxes {
		out[box] = append([]string(nil), names...)
	}
	return out
}

// UseDoor crosses the door the explorer is standing on, teleporting to its
// other endpoint. A locked crossing requires the destination room's key; a
// hidden passage cannot be used until revealed.
//
// Postcondition: On success the explorer stands on the door's far endpoint
// and both endpoints are marked as seen doors.
func (s *Session) UseDoor() (world.Coordinate, error) {
	pos := s.explorer.Position
	door, other, ok := s.doorAt(pos)
	if !ok {
		return pos, ErrNoDoorHere
	}

	dest, ok := s.idx.RoomAt(other)
	if !ok {
		return pos, fmt.Errorf("door %q leads nowhere", door.Label)
	}
	if dest.Locked || door.Locked {
		if !s.explorer.HasItem(dest.Key) {
			return pos, fmt.Errorf("%w: need %q", ErrDoorLocked, dest.Key)
		}
	}

	s.explorer.MarkDoor(door.Entry)
	s.explorer.MarkDoor(door.Exit)
	s.explorer.Position = other
	s.explorer.MarkExplored(other)
	s.logger.Info("used door",
		zap.String("door", door.Label),
		zap.String("to", other.String()),
		zap.String("room", dest.Name))
	return other, nil
}

// doorAt finds a door or revealed secret passage with an endpoint at pos,
// in the deck's pinned order, and returns it with its far endpoint.
func (s *Session) doorAt(pos world.Coordinate) (world.Door, world.Coordinate, bool) {
	for _, room := range s.idx.Deck().Rooms {
		for _, d := range room.Doors {
			if d.Entry == pos {
				return d, d.Exit, true
			}
			if d.Exit == pos {
				return d, d.Entry, true
			}
		}
		for _, p := range room.SecretPassages {
			if !p.Revealed {
				continue
			}
			d := world.Door{Label: p.Label, Entry: p.Entry, Exit: p.Exit}
			if p.Entry == pos {
				return d, p.Exit, true
			}
			if p.Exit == pos {
				return d, p.Entry, true
			}
		}
	}
	return world.Door{}, world.Coordinate{}, false
}

// UseItem applies a held item's use action. Aid items heal and are consumed;
// everything else has no use action (keys work automatically at doors, the
// flashlight works while carried).
func (s *Session) UseItem(name string) (string, error) {
	if !s.explorer.Pack.Has(name) {
		return "", fmt.Errorf("%w: %q", inventory.ErrItemNotHeld, name)
	}
	def, ok := s.catalog.Item(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", inventory.ErrUnknownItem, name)
	}
	if def.Category != inventory.CategoryAid {
		return "", fmt.Errorf("%w: %q", ErrNotUsable, name)
	}

	before := s.explorer.Health
	s.explorer.RestoreHealth(def.Heals)
	if err := s.explorer.Pack.Remove(name); err != nil {
		return "", err
	}
	restored := s.explorer.Health - before
	s.logger.Info("used aid item",
		zap.String("item", name),
		zap.Int("restored", restored),
		zap.Int("health", s.explorer.Health))
	return fmt.Sprintf("You use the %s and recover %d health.", name, restored), nil
}

// encounterChance is the chance denominator for a hostile encounter after
// movement: one roll in encounterChance triggers a fight.
const encounterChance = 5

// RoamingAttack rolls for a hostile encounter and, when one triggers, fights
// it out round by round. The command loop calls this after each move.
//
// Postcondition: Returns (result, true) when an encounter happened; the
// explorer's health reflects the fight either way.
func (s *Session) RoamingAttack() (combat.Result, bool) {
	if !s.explorer.IsAlive() {
		return combat.Result{}, false
	}
	if s.src.Intn(encounterChance) != 0 {
		return combat.Result{}, false
	}

	var enemy *combat.Enemy
	switch s.src.Intn(6) {
	case 0, 1, 2:
		enemy = combat.NewScuttler()
	case 3, 4:
		enemy = combat.NewLurker()
	default:
		enemy = combat.NewStalker()
	}

	res := combat.Fight(s.explorer, enemy, s.src)
	s.logger.Info("hostile encounter",
		zap.String("enemy", res.EnemyName),
		zap.Bool("won", res.Won),
		zap.Int("rounds", len(res.Rounds)),
		zap.Int("health", s.explorer.Health))
	return res, true
}

// CompleteTask records a finished task identifier.
func (s *Session) CompleteTask(id string) {
	s.tasks.Complete(id)
}

// TaskDone reports whether the task has been completed.
func (s *Session) TaskDone(id string) bool {
	return s.tasks.Done(id)
}

// SetFlag records a dialogue flag.
func (s *Session) SetFlag(name string, value bool) {
	s.flags[name] = value
}

// Flag reports a dialogue flag's value; unset flags are false.
func (s *Session) Flag(name string) bool {
	return s.flags[name]
}

// Status is a snapshot of the explorer for the status display.
type Status struct {
	Name          string
	Position      world.Coordinate
	RoomName      string
	Health        int
	MaxHealth     int
	HasFlashlight bool
	Carried       []string
	Used          int
	Capacity      int
}

// Status reports the explorer's current condition.
func (s *Session) Status() Status {
	room, _ := s.idx.RoomAt(s.explorer.Position)
	return Status{
		Name:          s.explorer.Name,
		Position:      s.explorer.Position,
		RoomName:      room.Name,
		Health:        s.explorer.Health,
		MaxHealth:     player.MaxHealth,
		HasFlashlight: s.explorer.HasFlashlight,
		Carried:       s.explorer.Pack.Items(),
		Used:          s.explorer.Pack.Used(),
		Capacity:      s.explorer.Pack.Capacity(),
	}
}

// Save writes both documents. The in-memory state is the source of truth;
// a failed write leaves the previous documents intact.
func (s *Session) Save() error {
	saveErr := s.store.WriteSave(state.SaveDocument{
		Name:          s.explorer.Name,
		Position:      s.explorer.Position,
		Inventory:     s.explorer.Pack.Items(),
		RoomItems:     s.idx.Compartments(),
		MagicStorage:  s.boxes,
		Health:        s.explorer.Health,
		HasFlashlight: s.explorer.HasFlashlight,
		Explored:      s.explorer.ExploredList(),
		Doors:         s.explorer.DoorList(),
	})
	settingsErr := s.store.WriteSettings(state.SettingsDocument{
		ItemPositions:  s.items,
		VisitedCoords:  s.explorer.ExploredList(),
		CompletedTasks: s.tasks.List(),
		DialogueFlags:  s.flags,
	})
	if saveErr != nil || settingsErr != nil {
		return errors.Join(saveErr, settingsErr)
	}
	s.logger.Info("session saved", zap.String("session", s.id))
	return nil
}

// Reset discards all progress: a fresh explorer at spawn, a new item
// placement, empty compartments and boxes, and both documents rewritten.
func (s *Session) Reset() error {
	s.explorer = player.New(s.opts.PlayerName, s.opts.Spawn, s.catalog, s.opts.Capacity)
	s.explorer.MarkExplored(s.explorer.Position)
	s.items = placement.Generate(s.catalog, s.idx.Deck(), s.src, s.logger)
	s.idx.ResetCompartments(nil)
	s.boxes = make(map[string][]string)
	s.tasks = puzzle.NewTaskSet(nil)
	s.flags = make(map[string]bool)
	s.logger.Info("session reset", zap.String("session", s.id))
	return s.Save()
}

// observeDoors marks every door with an endpoint inside the current visible
// set as seen.
func (s *Session) observeDoors() {
	vis := world.VisibleTiles(s.idx, s.explorer.Position, s.explorer.HasFlashlight)
	for _, room := range s.idx.Deck().Rooms {
		for _, d := range room.Doors {
			if vis[d.Entry] || vis[d.Exit] {
				s.explorer.MarkDoor(d.Entry)
				s.explorer.MarkDoor(d.Exit)
			}
		}
		for _, p := range room.SecretPassages {
			if !p.Revealed {
				continue
			}
			if vis[p.Entry] || vis[p.Exit] {
				s.explorer.MarkDoor(p.Entry)
				s.explorer.MarkDoor(p.Exit)
			}
		}
	}
}

func sortedCoords(set map[world.Coordinate]bool) []world.Coordinate {
	out := make([]world.Coordinate, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

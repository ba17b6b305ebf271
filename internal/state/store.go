package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/placement"
	"github.com/forgottenship/game/internal/game/world"
)

// Store owns the save and settings paths and reconciles their contents
// against the catalog and deck on every load. Data-integrity problems are
// recovered locally with a logged diagnostic; only write failures surface
// to the caller, and those leave in-memory state intact.
type Store struct {
	savePath     string
	settingsPath string
	catalog      *inventory.Catalog
	deck         *world.Deck
	logger       *zap.Logger
}

// NewStore creates a Store over the given document paths.
//
// Precondition: catalog, deck, and logger must be non-nil.
func NewStore(savePath, settingsPath string, catalog *inventory.Catalog, deck *world.Deck, logger *zap.Logger) *Store {
	return &Store{
		savePath:     savePath,
		settingsPath: settingsPath,
		catalog:      catalog,
		deck:         deck,
		logger:       logger,
	}
}

// LoadSave reads and normalizes the save document.
//
// A missing file, malformed JSON, or missing required keys (position,
// inventory) all yield (zero document, false) after a diagnostic; the
// caller starts fresh. Unknown item or room names are dropped with a
// diagnostic; the rest of the load still succeeds.
//
// Postcondition: When ok is true, every item name in the document exists in
// the catalog and every room name in the deck.
func (s *Store) LoadSave() (SaveDocument, bool) {
	data, err := os.ReadFile(s.savePath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("no save document, starting fresh", zap.String("path", s.savePath))
		return SaveDocument{}, false
	}
	if err != nil {
		s.logger.Warn("unreadable save document, starting fresh",
			zap.String("path", s.savePath), zap.Error(err))
		return SaveDocument{}, false
	}

	var raw saveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("malformed save document, starting fresh",
			zap.String("path", s.savePath), zap.Error(err))
		return SaveDocument{}, false
	}
	if raw.Position == nil || raw.Inventory == nil {
		s.logger.Warn("save document missing required keys, starting fresh",
			zap.String("path", s.savePath))
		return SaveDocument{}, false
	}
	if _, ok := roomOf(s.deck, *raw.Position); !ok {
		s.logger.Warn("saved position belongs to no room, starting fresh",
			zap.String("position", raw.Position.String()))
		return SaveDocument{}, false
	}

	doc := SaveDocument{
		Name:      raw.Name,
		Position:  *raw.Position,
		Inventory: s.knownItems(names(*raw.Inventory), "inventory"),
		RoomItems: make(map[string][]string),
		Health:    100,
		Explored:  raw.Explored,
		Doors:     raw.Doors,
	}
	if raw.Health != nil {
		doc.Health = clamp(*raw.Health, 0, 100)
	}
	if raw.HasFlashlight != nil {
		doc.HasFlashlight = *raw.HasFlashlight
	}
	for room, entries := range raw.RoomItems {
		if _, ok := s.deck.Room(room); !ok {
			s.logger.Warn("dropping compartment for unknown room", zap.String("room", room))
			continue
		}
		doc.RoomItems[room] = s.knownItems(names(entries), "room "+room)
	}
	if len(raw.MagicStorage) > 0 {
		doc.MagicStorage = make(map[string][]string, len(raw.MagicStorage))
		for box, entries := range raw.MagicStorage {
			doc.MagicStorage[box] = s.knownItems(names(entries), "box "+box)
		}
	}

	return doc, true
}

// WriteSave serializes the full document in memory and writes it atomically.
//
// Postcondition: On error the previous on-disk document is untouched.
func (s *Store) WriteSave(doc SaveDocument) error {
	raw := saveJSON{
		Name:      doc.Name,
		Position:  &doc.Position,
		Inventory: new([]itemRef),
		Health:    &doc.Health,
		Explored:  doc.Explored,
		Doors:     doc.Doors,
	}
	*raw.Inventory = refs(doc.Inventory)
	if doc.HasFlashlight {
		flag := true
		raw.HasFlashlight = &flag
	}
	if len(doc.RoomItems) > 0 {
		raw.RoomItems = make(map[string][]itemRef, len(doc.RoomItems))
		for room, items := range doc.RoomItems {
			raw.RoomItems[room] = refs(items)
		}
	}
	if len(doc.MagicStorage) > 0 {
		raw.MagicStorage = make(map[string][]itemRef, len(doc.MagicStorage))
		for box, items := range doc.MagicStorage {
			raw.MagicStorage[box] = refs(items)
		}
	}
	return writeAtomic(s.savePath, raw)
}

// LoadSettings reads and normalizes the settings document.
//
// Missing or malformed files yield an empty document with HasItemPositions
// false, which tells the caller to run the placement generator exactly
// once. Placement entries naming unknown
// rooms or items, or coordinates outside their room, are dropped with a
// diagnostic.
func (s *Store) LoadSettings() SettingsDocument {
	doc := SettingsDocument{ItemPositions: make(placement.Placement)}

	data, err := os.ReadFile(s.settingsPath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("no settings document, world state is fresh", zap.String("path", s.settingsPath))
		return doc
	}
	if err != nil {
		s.logger.Warn("unreadable settings document, using defaults",
			zap.String("path", s.settingsPath), zap.Error(err))
		return doc
	}

	var raw settingsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("malformed settings document, using defaults",
			zap.String("path", s.settingsPath), zap.Error(err))
		return doc
	}

	// A nil map here means the key was absent, not that the table emptied
	// out as items were collected.
	doc.HasItemPositions = raw.ItemPositions != nil
	for roomName, items := range raw.ItemPositions {
		room, ok := s.deck.Room(roomName)
		if !ok {
			s.logger.Warn("dropping placement for unknown room", zap.String("room", roomName))
			continue
		}
		for itemName, coord := range items {
			if _, ok := s.catalog.Item(itemName); !ok {
				s.logger.Warn("dropping placement for unknown item", zap.String("item", itemName))
				continue
			}
			if !room.Contains(coord) {
				s.logger.Warn("dropping placement outside its room",
					zap.String("item", itemName),
					zap.String("room", roomName),
					zap.String("coord", coord.String()))
				continue
			}
			if doc.ItemPositions[roomName] == nil {
				doc.ItemPositions[roomName] = make(map[string]world.Coordinate)
			}
			doc.ItemPositions[roomName][itemName] = coord
		}
	}
	doc.VisitedCoords = raw.VisitedCoords
	doc.CompletedTasks = raw.CompletedTasks
	doc.DialogueFlags = raw.DialogueFlags

	return doc
}

// WriteSettings serializes the full document in memory and writes it
// atomically.
//
// Postcondition: On error the previous on-disk document is untouched.
func (s *Store) WriteSettings(doc SettingsDocument) error {
	raw := settingsJSON{
		ItemPositions:  doc.ItemPositions,
		VisitedCoords:  doc.VisitedCoords,
		CompletedTasks: doc.CompletedTasks,
		DialogueFlags:  doc.DialogueFlags,
	}
	if raw.ItemPositions == nil {
		raw.ItemPositions = make(map[string]map[string]world.Coordinate)
	}
	if raw.VisitedCoords == nil {
		raw.VisitedCoords = []world.Coordinate{}
	}
	if raw.CompletedTasks == nil {
		raw.CompletedTasks = []string{}
	}
	return writeAtomic(s.settingsPath, raw)
}

// knownItems filters names against the catalog, logging dropped entries.
func (s *Store) knownItems(entries []string, where string) []string {
	out := make([]string, 0, len(entries))
	for _, name := range entries {
		if _, ok := s.catalog.Item(name); !ok {
			s.logger.Warn("dropping unknown item from save document",
				zap.String("item", name), zap.String("where", where))
			continue
		}
		out = append(out, name)
	}
	return out
}

// writeAtomic marshals v and replaces path via a temp file and rename, so a
// failed write never leaves a truncated document behind.
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func roomOf(deck *world.Deck, c world.Coordinate) (*world.Room, bool) {
	for _, room := range deck.Rooms {
		if room.Contains(c) {
			return room, true
		}
	}
	return nil, false
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/forgottenship/game/internal/game/nav"
	"github.com/forgottenship/game/internal/game/session"
	"github.com/forgottenship/game/internal/game/world"
)

// HandleMove processes a movement command. name is either a direction
// command ("bow") or the generic "move", in which case the direction is the
// first argument. An optional trailing argument gives the step count.
//
// Precondition: sess must not be nil.
// Postcondition: Returns the outcome text; committed steps stand even when
// the walk stops early.
func HandleMove(sess *session.Session, name string, args []string) string {
	var dir nav.Direction
	if IsMovementCommand(name) {
		dir = nav.Direction(name)
	} else {
		if len(args) == 0 {
			return "Usage: move <bow|stern|port|starboard> [steps]"
		}
		dir = nav.Direction(strings.ToLower(args[0]))
		args = args[1:]
	}
	if !dir.IsValid() {
		return fmt.Sprintf("%q is not a direction. Try bow, stern, port, or starboard.", dir)
	}

	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Sprintf("%q is not a step count.", args[0])
		}
		steps = n
	}

	res := sess.Move(dir, steps)
	room, _ := sess.Index().RoomAt(res.Position)

	switch res.Outcome {
	case nav.Moved:
		return fmt.Sprintf("You move %s to %s. You are in the %s.",
			dir, res.Position, room.Name)
	case nav.NoRoomAtDestination:
		return fmt.Sprintf("%s You stop at %s; there is nothing but hull beyond.%s",
			stepNote(res.Steps), res.Position, hereNote(res.Steps, room))
	case nav.NoAccessibleDoor:
		return fmt.Sprintf("%s A solid bulkhead blocks the way at %s.%s",
			stepNote(res.Steps), res.Position, hereNote(res.Steps, room))
	case nav.DoorLocked:
		return fmt.Sprintf("%s The door ahead is locked. You need the %s.%s",
			stepNote(res.Steps), res.KeyNeeded, hereNote(res.Steps, room))
	default:
		return "You cannot move that way."
	}
}

func stepNote(steps int) string {
	switch steps {
	case 0:
		return "You do not move."
	case 1:
		return "You take one step."
	default:
		return fmt.Sprintf("You take %d steps.", steps)
	}
}

// hereNote names the room the walk ended in. Committed steps may have
// carried the explorer into a different room before the stop, so any
// partial walk reports where it left them.
func hereNote(steps int, room *world.Room) string {
	if steps == 0 || room == nil {
		return ""
	}
	return fmt.Sprintf(" You are in the %s.", room.Name)
}

// HandleEncounter rolls for a roaming enemy after movement and narrates the
// fight when one triggers. Returns "" when nothing attacks.
func HandleEncounter(sess *session.Session) string {
	res, ok := sess.RoamingAttack()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A %s lunges out of the dark!\n", res.EnemyName)
	for _, round := range res.Rounds {
		fmt.Fprintf(&b, "You hit the %s for %d.", res.EnemyName, round.PlayerHit)
		if round.EnemyHit > 0 {
			fmt.Fprintf(&b, " It claws you for %d.", round.EnemyHit)
		}
		b.WriteByte('\n')
	}
	st := sess.Status()
	if res.Won {
		fmt.Fprintf(&b, "The %s collapses. You are at %d/%d health.",
			res.EnemyName, st.Health, st.MaxHealth)
	} else {
		fmt.Fprintf(&b, "The %s overwhelms you. Everything goes dark.", res.EnemyName)
	}
	return b.String()
}

// HandleLook describes the current room and everything visible from here.
func HandleLook(sess *session.Session) string {
	v := sess.Look()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", v.RoomName, v.Description)

	if len(v.FloorItems) > 0 {
		fmt.Fprintf(&b, "On the floor: %s.\n", strings.Join(v.FloorItems, ", "))
	}
	if len(v.ItemsInSight) > 0 {
		names := make([]string, 0, len(v.ItemsInSight))
		for name := range v.ItemsInSight {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "You spot a %s at %s.\n", name, v.ItemsInSight[name])
		}
	}
	if !sess.Player().HasFlashlight {
		b.WriteString("It is dark; you can only see a few feet around you.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// HandleMap renders the explored portion of the deck as a grid: '@' for the
// explorer, '#' for seen doors, '.' for explored tiles, and blanks for
// everything not yet walked.
func HandleMap(sess *session.Session) string {
	deck := sess.Index().Deck()
	p := sess.Player()

	minCol, maxCol := byte('Z'), byte('A')
	minRow, maxRow := world.MaxRow, world.MinRow
	for _, room := range deck.Rooms {
		for _, c := range room.Coords {
			if c.Col < minCol {
				minCol = c.Col
			}
			if c.Col > maxCol {
				maxCol = c.Col
			}
			if c.Row < minRow {
				minRow = c.Row
			}
			if c.Row > maxRow {
				maxRow = c.Row
			}
		}
	}
	if minCol > maxCol {
		return "The chart is blank."
	}

	var b strings.Builder
	// The bow points up: highest row first.
	for row := maxRow; row >= minRow; row-- {
		for col := minCol; col <= maxCol; col++ {
			c := world.Coord(col, row)
			switch {
			case c == p.Position:
				b.WriteByte('@')
			case p.DoorSeen(c):
				b.WriteByte('#')
			case p.Explored(c):
				b.WriteByte('.')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// HandleDoor crosses the door under the explorer's feet.
func HandleDoor(sess *session.Session) string {
	pos, err := sess.UseDoor()
	if err != nil {
		return errText(err)
	}
	room, _ := sess.Index().RoomAt(pos)
	return fmt.Sprintf("You step through the door into the %s.", room.Name)
}

// errText capitalizes an error for display.
func errText(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Something is wrong."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// HandleUse applies a carried item; "use door" crosses the door instead.
func HandleUse(sess *session.Session, rawArgs string) string {
	name := strings.TrimSpace(rawArgs)
	if name == "" {
		return "Usage: use <item>"
	}
	if strings.EqualFold(name, "door") {
		return HandleDoor(sess)
	}
	msg, err := sess.UseItem(name)
	if err != nil {
		return errText(err)
	}
	return msg
}

// HandleTake picks up a named item from the floor or a visible tile.
func HandleTake(sess *session.Session, rawArgs string) string {
	name := strings.TrimSpace(rawArgs)
	if name == "" {
		return "Usage: take <item>"
	}
	if err := sess.Pickup(name); err != nil {
		return errText(err)
	}
	return fmt.Sprintf("You take the %s.", name)
}

// HandleDrop drops a carried item onto the floor.
func HandleDrop(sess *session.Session, rawArgs string) string {
	name := strings.TrimSpace(rawArgs)
	if name == "" {
		return "Usage: drop <item>"
	}
	if err := sess.Drop(name); err != nil {
		return errText(err)
	}
	return fmt.Sprintf("You drop the %s.", name)
}

// HandleStore moves a carried item into a named storage box.
func HandleStore(sess *session.Session, args []string, rawArgs string) string {
	if len(args) < 2 {
		return "Usage: store <box> <item>"
	}
	box := args[0]
	item := strings.TrimSpace(strings.TrimPrefix(rawArgs, box))
	if err := sess.StoreInBox(box, item); err != nil {
		return errText(err)
	}
	return fmt.Sprintf("You store the %s in the %s.", item, box)
}

// HandleRetrieve takes an item back out of a storage box.
func HandleRetrieve(sess *session.Session, args []string, rawArgs string) string {
	if len(args) < 2 {
		return "Usage: retrieve <box> <item>"
	}
	box := args[0]
	item := strings.TrimSpace(strings.TrimPrefix(rawArgs, box))
	if err := sess.TakeFromBox(box, item); err != nil {
		return errText(err)
	}
	return fmt.Sprintf("You take the %s out of the %s.", item, box)
}

// HandleInventory lists the carried items and capacity usage.
func HandleInventory(sess *session.Session) string {
	st := sess.Status()
	if len(st.Carried) == 0 {
		return fmt.Sprintf("You carry nothing. (0/%d)", st.Capacity)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You carry (%d/%d):\n", st.Used, st.Capacity)
	for _, name := range st.Carried {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// HandleStatus reports the explorer's condition.
func HandleStatus(sess *session.Session) string {
	st := sess.Status()
	light := "no light"
	if st.HasFlashlight {
		light = "flashlight on"
	}
	return fmt.Sprintf("%s: %d/%d health, at %s in the %s, %s.",
		st.Name, st.Health, st.MaxHealth, st.Position, st.RoomName, light)
}

// HandleSave writes both documents.
func HandleSave(sess *session.Session) string {
	if err := sess.Save(); err != nil {
		return fmt.Sprintf("Could not save: %v.", err)
	}
	return "Game saved."
}

// HandleReset discards all progress and starts over.
func HandleReset(sess *session.Session) string {
	if err := sess.Reset(); err != nil {
		return fmt.Sprintf("Could not reset: %v.", err)
	}
	return "Everything resets. You wake at the start again."
}

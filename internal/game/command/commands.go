// Package command provides the command registry, parser, and the handlers
// that turn parsed input into session operations and display text.
package command

// Categories for organizing commands.
const (
	CategoryMovement  = "movement"
	CategoryWorld     = "world"
	CategoryInventory = "inventory"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to their handler functions.
const (
	HandlerMove      = "move"
	HandlerLook      = "look"
	HandlerMap       = "map"
	HandlerDoor      = "door"
	HandlerUse       = "use"
	HandlerTake      = "take"
	HandlerDrop      = "drop"
	HandlerStore     = "store"
	HandlerRetrieve  = "retrieve"
	HandlerInventory = "inventory"
	HandlerStatus    = "status"
	HandlerSave      = "save"
	HandlerReset     = "reset"
	HandlerQuit      = "quit"
	HandlerHelp      = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, world, inventory, system).
	Category string
	// Handler maps to the handler function in the command loop.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "bow", Aliases: []string{"fore"}, Help: "Move toward the bow (bow [steps])", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "stern", Aliases: []string{"aft"}, Help: "Move toward the stern (stern [steps])", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "port", Aliases: nil, Help: "Move to port (port [steps])", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "starboard", Aliases: []string{"star"}, Help: "Move to starboard (starboard [steps])", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "move", Aliases: []string{"go"}, Help: "Move in a direction (move <direction> [steps])", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "door", Aliases: []string{"cross"}, Help: "Cross the door you are standing on", Category: CategoryMovement, Handler: HandlerDoor},

		// World commands
		{Name: "look", Aliases: []string{"l"}, Help: "Look around the current room", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "map", Aliases: []string{"chart"}, Help: "Show the explored deck map", Category: CategoryWorld, Handler: HandlerMap},

		// Inventory commands
		{Name: "take", Aliases: []string{"get", "pickup"}, Help: "Pick up an item (take <item>)", Category: CategoryInventory, Handler: HandlerTake},
		{Name: "drop", Aliases: nil, Help: "Drop an item on the floor (drop <item>)", Category: CategoryInventory, Handler: HandlerDrop},
		{Name: "store", Aliases: nil, Help: "Store an item in a box (store <box> <item>)", Category: CategoryInventory, Handler: HandlerStore},
		{Name: "retrieve", Aliases: []string{"unstore"}, Help: "Take an item out of a box (retrieve <box> <item>)", Category: CategoryInventory, Handler: HandlerRetrieve},
		{Name: "use", Aliases: nil, Help: "Use a carried item (use <item>)", Category: CategoryInventory, Handler: HandlerUse},
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "Show carried items and capacity", Category: CategoryInventory, Handler: HandlerInventory},

		// System commands
		{Name: "status", Aliases: []string{"stat"}, Help: "Show name, health, and position", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "save", Aliases: nil, Help: "Save the game", Category: CategorySystem, Handler: HandlerSave},
		{Name: "reset", Aliases: nil, Help: "Discard all progress and start over", Category: CategorySystem, Handler: HandlerReset},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Save and leave the game", Category: CategorySystem, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "bow", "stern", "port", "starboard":
		return true
	default:
		return false
	}
}

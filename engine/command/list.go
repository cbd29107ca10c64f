package command

// List is a frame-local, append-only collection of draw commands.
// The zero value is ready to use. A List is not safe for concurrent use.
type List struct {
	commands []DrawCommand
}

// Push appends commands to the list.
func (l *List) Push(commands ...DrawCommand) {
	l.commands = append(l.commands, commands...)
}

// Commands returns the commands pushed since the last Reset.
// The slice is only valid until the next Push or Reset.
func (l *List) Commands() []DrawCommand {
	return l.commands
}

// Len returns the number of pending commands.
func (l *List) Len() int {
	return len(l.commands)
}

// Reset empties the list, keeping its backing storage for the next frame.
func (l *List) Reset() {
	clear(l.commands)
	l.commands = l.commands[:0]
}

package abi

// Class is the register class of one eightbyte window.
type Class uint8

const (
	ClassNone Class = iota
	ClassInteger
	ClassFloat
	ClassMemory
)

var classNames = [...]string{
	ClassNone:    "NONE",
	ClassInteger: "INTEGER",
	ClassFloat:   "FLOAT",
	ClassMemory:  "MEMORY",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

package game

import "fmt"

// Class identifies a hero's character class, as recorded in deck directives.
type Class int

const (
	ClassAll Class = iota
	ClassMage
	ClassDruid
	ClassHunter
	ClassPaladin
	ClassPriest
	ClassRogue
	ClassShaman
	ClassWarlock
	ClassWarrior
)

var classNames = map[Class]string{
	ClassAll:     "ALL",
	ClassMage:    "MAGE",
	ClassDruid:   "DRUID",
	ClassHunter:  "HUNTER",
	ClassPaladin: "PALADIN",
	ClassPriest:  "PRIEST",
	ClassRogue:   "ROGUE",
	ClassShaman:  "SHAMAN",
	ClassWarlock: "WARLOCK",
	ClassWarrior: "WARRIOR",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseClass maps a deck directive's class argument back to a Class.
func ParseClass(name string) (Class, error) {
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}
	return ClassAll, fmt.Errorf("unknown character class %q", name)
}

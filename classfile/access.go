package classfile

// AccessLevel orders the four JVM visibilities from most to least restrictive.
type AccessLevel int

const (
	LevelPrivate AccessLevel = iota
	LevelPackageVisible
	LevelProtected
	LevelPublic
)

func (l AccessLevel) String() string {
	switch l {
	case LevelPrivate:
		return "private"
	case LevelProtected:
		return "protected"
	case LevelPublic:
		return "public"
	default:
		return "package"
	}
}

// AccessLevelOf returns the visibility encoded in flags. Flags without any
// visibility bit are package visible.
func AccessLevelOf(flags AccessFlags) AccessLevel {
	switch flags & AccessMask {
	case AccPrivate:
		return LevelPrivate
	case AccProtected:
		return LevelProtected
	case AccPublic:
		return LevelPublic
	default:
		return LevelPackageVisible
	}
}

// AccessFlagsFor is the inverse of AccessLevelOf.
func AccessFlagsFor(level AccessLevel) AccessFlags {
	switch level {
	case LevelPrivate:
		return AccPrivate
	case LevelProtected:
		return AccProtected
	case LevelPublic:
		return AccPublic
	default:
		return 0
	}
}

// ReplaceAccessFlags swaps the visibility bits of flags for those of
// newFlags. Private members lose their final bit.
func ReplaceAccessFlags(flags, newFlags AccessFlags) AccessFlags {
	if newFlags&AccessMask == AccPrivate {
		flags &^= AccFinal
	}
	return flags&^AccessMask | newFlags&AccessMask
}

// Accepted reports whether flags satisfy a required-set / required-unset
// pair. The visibility bits in requiredSet form a one-of group; every other
// bit in requiredSet must be present, and no bit of requiredUnset may be.
func Accepted(flags, requiredSet, requiredUnset AccessFlags) bool {
	nonAccess := requiredSet &^ AccessMask
	return flags&nonAccess == nonAccess &&
		(requiredSet&AccessMask == 0 || requiredSet&flags&AccessMask != 0) &&
		flags&requiredUnset == 0
}

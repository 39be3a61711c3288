package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessLevels(t *testing.T) {
	for _, level := range []AccessLevel{LevelPrivate, LevelPackageVisible, LevelProtected, LevelPublic} {
		t.Run(level.String(), func(t *testing.T) {
			assert.Equal(t, level, AccessLevelOf(AccessFlagsFor(level)|AccStatic))
		})
	}

	assert.Less(t, LevelPrivate, LevelPackageVisible)
	assert.Less(t, LevelProtected, LevelPublic)
}

func TestAccessFlagsForLevelOf(t *testing.T) {
	visibility := []AccessFlags{0, AccPrivate, AccProtected, AccPublic}
	others := []AccessFlags{0, AccStatic, AccFinal | AccSynthetic, AccAbstract | AccInterface, AccStatic | AccFinal | AccVolatile}
	for _, v := range visibility {
		for _, o := range others {
			flags := v | o
			assert.Equal(t, flags&AccessMask, AccessFlagsFor(AccessLevelOf(flags)), "flags 0x%04X", uint16(flags))
		}
	}
}

func TestReplaceAccessFlags(t *testing.T) {
	tests := []struct {
		name         string
		flags, level AccessFlags
		want         AccessFlags
	}{
		{"widen", AccPrivate | AccStatic, AccPublic, AccPublic | AccStatic},
		{"to package", AccProtected | AccFinal, 0, AccFinal},
		{"private drops final", AccPublic | AccFinal | AccStatic, AccPrivate, AccPrivate | AccStatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceAccessFlags(tt.flags, tt.level))
		})
	}
}

func TestAccepted(t *testing.T) {
	tests := []struct {
		name                      string
		flags, required, excluded AccessFlags
		want                      bool
	}{
		{"no requirements", AccPrivate, 0, 0, true},
		{"one of visibility", AccProtected | AccStatic, AccPublic | AccProtected, 0, true},
		{"visibility miss", AccPrivate, AccPublic | AccProtected, 0, false},
		{"all other bits required", AccPublic | AccStatic, AccStatic | AccFinal, 0, false},
		{"excluded bit", AccPublic | AccSynthetic, AccPublic, AccSynthetic, false},
		{"package visible", AccStatic, AccStatic, AccessMask, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accepted(tt.flags, tt.required, tt.excluded))
		})
	}
}

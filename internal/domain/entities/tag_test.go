package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "namespaced", input: "minecraft:logs", valid: true},
		{name: "path segments", input: "forge:ores/iron", valid: true},
		{name: "ore dictionary style", input: "oreIron", valid: true},
		{name: "underscores and digits", input: "tier_2", valid: true},
		{name: "empty", input: "", valid: false},
		{name: "space", input: "my tag", valid: false},
		{name: "hyphen", input: "forge:ingots-iron", valid: false},
		{name: "dot", input: "forge.ores", valid: false},
		{name: "unicode letter", input: "tägs", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName(tt.input)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			assert.Equal(t, tt.valid, IsValidTagName(tt.input))
		})
	}
}

func TestValidateTagName_EmptyIsSentinel(t *testing.T) {
	assert.ErrorIs(t, ValidateTagName(""), ErrEmptyTagName)
}

func TestStats_Add(t *testing.T) {
	a := Stats{Tags: 1, Associations: 2, Keys: 3}
	b := Stats{Tags: 10, Associations: 20, Keys: 30}

	assert.Equal(t, Stats{Tags: 11, Associations: 22, Keys: 33}, a.Add(b))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{input: "item", expected: KindItem},
		{input: "Fluid", expected: KindFluid},
		{input: " BLOCK ", expected: KindBlock},
		{input: "block-state", expected: KindBlockState},
		{input: "block_state", expected: KindBlockState},
		{input: "entity", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestKind_HasSubtypes(t *testing.T) {
	assert.True(t, KindItem.HasSubtypes())
	assert.True(t, KindBlockState.HasSubtypes())
	assert.False(t, KindFluid.HasSubtypes())
	assert.False(t, KindBlock.HasSubtypes())
}

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_DashVariantsCollapse(t *testing.T) {
	assert.Equal(t, "18-23", Normalize("18–23"))
	assert.Equal(t, "18-23", Normalize("18—23"))
	assert.Equal(t, "18-23", Normalize("18−23"))
}

func TestNormalize_EmojiAndSymbolsStripped(t *testing.T) {
	assert.Equal(t, "пошта 11.12", Normalize("🔥пошта 11.12 ✌️"))
}

func TestNormalize_WhitespaceRunsCollapseButLinesSurvive(t *testing.T) {
	got := Normalize("  пошта   11.12  \n\n  Дима \t Маслов  ")

	assert.Equal(t, "пошта 11.12\nДима Маслов", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("🔥 пошта — 11.12 …\nДима   Маслов")

	assert.Equal(t, once, Normalize(once))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("  \n \t "))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"пошта", "Дима Маслов"}, Lines("пошта\nДима Маслов"))
	assert.Nil(t, Lines(""))
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "нова пошта 11 12", Flatten("Нова Пошта, 11.12!"))
	assert.Equal(t, "", Flatten("... !!! ---"))
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedTextUnmarshalPlainString(t *testing.T) {
	var text LocalizedText
	require.NoError(t, json.Unmarshal([]byte(`"Grade 1"`), &text))
	assert.Equal(t, "Grade 1", text.En)
	assert.Empty(t, text.Ar)
	assert.True(t, text.Plain())
}

func TestLocalizedTextUnmarshalBilingualObject(t *testing.T) {
	var text LocalizedText
	require.NoError(t, json.Unmarshal([]byte(`{"en":"Grade 1","ar":"الصف الأول"}`), &text))
	assert.Equal(t, "Grade 1", text.En)
	assert.Equal(t, "الصف الأول", text.Ar)
	assert.False(t, text.Plain())
}

func TestLocalizedTextUnmarshalRejectsOtherShapes(t *testing.T) {
	var text LocalizedText
	assert.Error(t, json.Unmarshal([]byte(`42`), &text))
	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &text))
}

func TestLocalizedTextMarshalPreservesWireShape(t *testing.T) {
	plain, err := json.Marshal(NewLocalizedText("Grade 1", ""))
	require.NoError(t, err)
	assert.Equal(t, `"Grade 1"`, string(plain))

	bilingual, err := json.Marshal(NewLocalizedText("Grade 1", "الصف الأول"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"Grade 1","ar":"الصف الأول"}`, string(bilingual))
}

func TestLocalizedTextIn(t *testing.T) {
	text := NewLocalizedText("Grade 1", "الصف الأول")
	assert.Equal(t, "الصف الأول", text.In("ar"))
	assert.Equal(t, "Grade 1", text.In("en"))
	assert.Equal(t, "Grade 1", text.In("fr"), "unknown languages fall back to English")

	plain := NewLocalizedText("Grade 1", "")
	assert.Equal(t, "Grade 1", plain.In("ar"), "missing Arabic falls back to English")
}

package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterInput(t *testing.T) {
	cases := map[string]string{
		"":     "",
		"7":    "7",
		"07":   "07",
		"123":  "12",
		"a1b2": "12",
		"-5":   "5",
		" 4 ":  "4",
		"x":    "",
		"٣4":   "4",
		"9.5":  "95",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, FilterInput(input), input)
	}
}

func TestTotalMillis(t *testing.T) {
	assert.Equal(t, int64(0), TotalMillis("00", "00"))
	assert.Equal(t, int64(0), TotalMillis("", ""))
	assert.Equal(t, int64(5000), TotalMillis("00", "05"))
	assert.Equal(t, int64(90000), TotalMillis("1", "30"))
	assert.Equal(t, int64(59000), TotalMillis("0", "99"))
	assert.Equal(t, int64((99*60+59)*1000), TotalMillis("99", "59"))
	assert.Equal(t, int64(99*60*1000), TotalMillis("250", "0"))
	assert.Equal(t, int64(0), TotalMillis("-3", "-4"))
}

func TestFormatMillis(t *testing.T) {
	assert.Equal(t, "00:00", FormatMillis(0))
	assert.Equal(t, "00:00", FormatMillis(-1500))
	assert.Equal(t, "00:30", FormatMillis(30000))
	assert.Equal(t, "01:05", FormatMillis(65999))
	assert.Equal(t, "99:59", FormatMillis((99*60+59)*1000))
	assert.Equal(t, "120:00", FormatMillis(120*60*1000))
}

func TestErrorMessage(t *testing.T) {
	none := NoError()
	text, set := none.Get()
	assert.False(t, set)
	assert.Empty(t, text)
	assert.Equal(t, ErrorMessage{}, none)

	message := ErrorText("boom")
	text, set = message.Get()
	assert.True(t, set)
	assert.Equal(t, "boom", text)
	assert.Equal(t, "boom", message.String())
}

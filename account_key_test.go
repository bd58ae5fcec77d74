package aclmsg_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/aclmsg"
)

func TestAccountKey_WireNames(t *testing.T) {
	want := []string{"categories", "keys", "channels", "commands", "profile"}
	keys := aclmsg.AccountKeys()
	require.Len(t, keys, len(want))
	for i, k := range keys {
		assert.Equal(t, want[i], k.String())
		assert.Equal(t, want[i], aclmsg.FormatAccountKey(k))
		parsed, err := aclmsg.ParseAccountKey(want[i])
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		if i > 0 {
			assert.True(t, keys[i-1].Less(k), "declaration order must be preserved")
		}
	}
}

func TestAccountKey_ParseRejects(t *testing.T) {
	for _, in := range []string{"", "Keys", "owner", "keys ", "category"} {
		_, err := aclmsg.ParseAccountKey(in)
		var target *aclmsg.InvalidEnumValueError
		require.True(t, errors.As(err, &target), "input %q", in)
		assert.Equal(t, in, target.Value)
	}
	_, err := aclmsg.ParseAccountKey("owner")
	assert.EqualError(t, err, `invalid value "owner", expected one of: categories, keys, channels, commands, profile`)
}

func TestAccountKey_Text(t *testing.T) {
	b, err := aclmsg.AccountKeyProfile.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "profile", string(b))

	var k aclmsg.AccountKey
	require.NoError(t, k.UnmarshalText([]byte("commands")))
	assert.Equal(t, aclmsg.AccountKeyCommands, k)
	require.Error(t, k.UnmarshalText([]byte("nope")))

	_, err = aclmsg.AccountKey(0).MarshalText()
	require.Error(t, err)
	assert.False(t, aclmsg.AccountKey(0).Valid())
	assert.False(t, aclmsg.AccountKey(99).Valid())
	assert.Equal(t, "AccountKey(99)", aclmsg.AccountKey(99).String())
}

// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivateKey(t *testing.T) {
	assert := assert.New(t)

	priv := GenerateKey(nil)
	priv1, err := NewPrivateKey(priv.Bytes())
	assert.NoError(err)
	assert.True(priv.PublicKey().Equal(priv1.PublicKey()))

	_, err = NewPrivateKey([]byte{1, 2})
	assert.ErrorIs(err, ErrInvalidKeySize)

	msg := []byte("message to sign")
	sig := priv.Sign(msg)
	assert.True(sig.Verify(msg))
	assert.False(sig.Verify([]byte("other message")))

	sig1, err := newSignature(sig.Value(), priv.PublicKey().Bytes())
	assert.NoError(err)
	assert.True(sig1.Verify(msg))
}

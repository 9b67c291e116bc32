package password_test

import (
	"testing"

	"huddle/shared/password"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := password.Hash("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hashed)

	assert.NoError(t, password.Verify("s3cret-pass", hashed))
	assert.Error(t, password.Verify("wrong-pass", hashed))
}

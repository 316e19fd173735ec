package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newHashPasswordCommand()
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--cost", strconv.Itoa(bcrypt.MinCost)})

	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPassword_Errors(t *testing.T) {
	var out bytes.Buffer

	err := hashPassword(bcrypt.MinCost, strings.NewReader("\n"), &out)
	assert.ErrorContains(t, err, "must not be empty")

	err = hashPassword(bcrypt.MaxCost+1, strings.NewReader("s3cret"), &out)
	assert.ErrorContains(t, err, "auth.bcryptCost")

	assert.Empty(t, out.String())
}

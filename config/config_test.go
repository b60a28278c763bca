package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":     "8081",
		"BAD_INT":  "eighty",
		"EMPTY":    "",
		"DEBUG":    "true",
		"ORIGINS":  " https://a.example , ,https://b.example",
		"BLANKS":   " , ",
		"NOT_BOOL": "maybe",
	}

	assert.Equal(t, 8081, GetInt(c, "PORT", 3000))
	assert.Equal(t, 3000, GetInt(c, "BAD_INT", 3000))
	assert.Equal(t, 3000, GetInt(c, "MISSING", 3000))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "8081", GetString(c, "PORT", ""))
	assert.True(t, GetBool(c, "DEBUG", false))
	assert.False(t, GetBool(c, "NOT_BOOL", false))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetStrings(c, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetStrings(c, "BLANKS", []string{"*"}))
	assert.Equal(t, "x", GetString(nil, "ANY", "x"))
}

func TestSplit(t *testing.T) {
	k, v := split("A=b=c")
	assert.Equal(t, "A", k)
	assert.Equal(t, "b=c", v)

	k, v = split("LONELY")
	assert.Equal(t, "LONELY", k)
	assert.Equal(t, "", v)
}

type fakeParameters struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeParameters) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("more")
	}
	return out, nil
}

func TestLoadSSM(t *testing.T) {
	t.Run("follows pagination and keys by base name", func(t *testing.T) {
		client := &fakeParameters{pages: [][]types.Parameter{
			{{Name: aws.String("/site/prod/JWT_SECRET"), Value: aws.String("s3cr3t")}},
			{{Name: aws.String("/site/prod/ADMIN_PASSWORD"), Value: aws.String("pw")}},
		}}

		values, err := LoadSSM(context.Background(), client, "site/prod")
		require.NoError(t, err)
		assert.Equal(t, 2, client.calls)
		assert.Equal(t, map[string]string{"JWT_SECRET": "s3cr3t", "ADMIN_PASSWORD": "pw"}, values)

		merged := Merge(map[string]string{"JWT_SECRET": "local", "PORT": "3000"}, values)
		assert.Equal(t, "s3cr3t", merged["JWT_SECRET"])
		assert.Equal(t, "3000", merged["PORT"])
	})

	t.Run("empty prefix skips the call", func(t *testing.T) {
		client := &fakeParameters{err: errors.New("must not be called")}
		values, err := LoadSSM(context.Background(), client, "")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		client := &fakeParameters{err: errors.New("denied")}
		_, err := LoadSSM(context.Background(), client, "/site")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "denied")
	})
}

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSources(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env, err := DefaultConfig().NewEnv(&stdout, &stderr)
	require.NoError(t, err)

	runPrint = true
	defer func() { runPrint = false }()

	err = runSources(env, &stdout,
		[]string{"a", "b"},
		[][]byte{[]byte("(def {x} 2)"), []byte("(+ x 1) (sum {1 2 3})")})
	require.NoError(t, err)
	assert.Equal(t, "()\n3\n6\n", stdout.String())

	stdout.Reset()
	err = runSources(env, &stdout, []string{"c"}, [][]byte{[]byte("(print 1) (/ 1 0) (print 2)")})
	assert.EqualError(t, err, "division by zero")
	assert.Equal(t, "1\n()\n", stdout.String())

	err = runSources(env, &stdout, []string{"d"}, [][]byte{[]byte("(+ 1")})
	assert.Error(t, err)
}

func TestRunReadExpressions(t *testing.T) {
	runExpression = true
	defer func() { runExpression = false }()
	names, exprs, err := runReadExpressions([]string{"(+ 1 2)", "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"expression 1", "expression 2"}, names)
	assert.Equal(t, [][]byte{[]byte("(+ 1 2)"), []byte("x")}, exprs)
}

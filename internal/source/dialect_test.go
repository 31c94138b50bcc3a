package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDialect(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Dialect
	}{
		{
			"cpp",
			"#include <memory>\nint main() { auto p = std::make_unique<int>(5); }\n",
			DialectCPP,
		},
		{
			"c",
			"#include <stdlib.h>\nint main() { char *p = malloc(16); free(p); return 0; }\n",
			DialectC,
		},
		{
			"cpp namespace wins over includes",
			"#include <stdio.h>\nnamespace app { class Runner {}; }\n",
			DialectCPP,
		},
		{
			"no c-family signal",
			"def main():\n    print('hello')\n",
			DialectUnknown,
		},
		{
			"empty",
			"",
			DialectUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectDialect(tc.text))
		})
	}
}

func TestDialectString(t *testing.T) {
	assert.Equal(t, "c", DialectC.String())
	assert.Equal(t, "cpp", DialectCPP.String())
	assert.Equal(t, "unknown", DialectUnknown.String())
	assert.Equal(t, "unknown", Dialect(200).String())
}

func TestIsCFamily(t *testing.T) {
	assert.True(t, DialectC.IsCFamily())
	assert.True(t, DialectCPP.IsCFamily())
	assert.False(t, DialectUnknown.IsCFamily())
}

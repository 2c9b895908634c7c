package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(t *testing.T, doc string) (string, bool) {
	t.Helper()
	out, changed, err := New(Options{}).Transform(doc)
	require.NoError(t, err)
	return out, changed
}

func TestThrowBlockReconstruction(t *testing.T) {
	in := strings.Join([]string{
		`            (() => {`,
		`                mapper.MapEntityToParameters(null);`,
		`            }).Should().Throw<ArgumentNullException>());`,
	}, "\n")
	want := strings.Join([]string{
		`            // Act & Assert`,
		`            Action act = () =>`,
		`            {`,
		`                mapper.MapEntityToParameters(null);`,
		`            };`,
		`            act.Should().Throw<ArgumentNullException>();`,
	}, "\n")

	out, changed := transform(t, in)
	assert.True(t, changed)
	assert.Equal(t, want, out)
}

func TestThrowBlockMultiStatementBody(t *testing.T) {
	in := strings.Join([]string{
		`        (() =>`,
		`        {`,
		`            var provider = new SQLitePersistenceProvider(connection);`,
		`            provider.Initialize();`,
		`        }).Should().Throw<InvalidOperationException>();`,
	}, "\n")

	out, changed := transform(t, in)
	assert.True(t, changed)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, `        // Act & Assert`, lines[0])
	assert.Equal(t, `        Action act = () =>`, lines[1])
	assert.Equal(t, `        {`, lines[2])
	// Body reproduced verbatim, original indentation intact.
	assert.Equal(t, `        {`, lines[3])
	assert.Equal(t, `            var provider = new SQLitePersistenceProvider(connection);`, lines[4])
	assert.Equal(t, `            provider.Initialize();`, lines[5])
	assert.Equal(t, `        };`, lines[6])
	assert.Equal(t, `        act.Should().Throw<InvalidOperationException>();`, lines[7])
}

func TestThrowSingleLineShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "wrapped lambda",
			in:   `        (() => provider.Initialize()).Should().Throw<InvalidOperationException>();`,
			want: []string{
				`        // Act & Assert`,
				`        Action act = () => provider.Initialize();`,
				`        act.Should().Throw<InvalidOperationException>();`,
			},
		},
		{
			name: "assertion chained inside the lambda",
			in:   `        (() => mapper.MapEntityToParameters(null).Should().Throw<ArgumentNullException>());`,
			want: []string{
				`        // Act & Assert`,
				`        Action act = () => mapper.MapEntityToParameters(null);`,
				`        act.Should().Throw<ArgumentNullException>();`,
			},
		},
		{
			name: "throw assigned to a variable",
			in:   `        var config = SqliteConfiguration.FromJsonFileRequired(missing).Should().Throw<FileNotFoundException>();`,
			want: []string{
				`        // Act & Assert`,
				`        Action act = () => SqliteConfiguration.FromJsonFileRequired(missing);`,
				`        act.Should().Throw<FileNotFoundException>();`,
			},
		},
		{
			name: "wrapped lambda with mangled inner chain",
			in:   `(() => store.Load().Should().BeNull()).Should().Throw<KeyNotFoundException>();`,
			want: []string{
				`// Act & Assert`,
				`Action act = () => store.Load();`,
				`act.Should().Throw<KeyNotFoundException>();`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := transform(t, tt.in)
			assert.True(t, changed)
			assert.Equal(t, strings.Join(tt.want, "\n"), out)
		})
	}
}

func TestUnterminatedBlockConservation(t *testing.T) {
	in := strings.Join([]string{
		`        (() => {`,
		`            provider.Initialize();`,
		`            // document ends before the block closes`,
	}, "\n")

	out, changed := transform(t, in)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestOrdinaryLambdaBlockUntouched(t *testing.T) {
	in := strings.Join([]string{
		`        var handler = (() => {`,
		`            counter++;`,
		`        });`,
	}, "\n")

	out, changed := transform(t, in)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestThrowBlockMissingTypeIsInvariantViolation(t *testing.T) {
	in := strings.Join([]string{
		`        (() => {`,
		`            provider.Initialize();`,
		`        }).Should().Throw();`,
	}, "\n")

	out, changed, err := New(Options{}).Transform(in)
	require.Error(t, err)
	assert.False(t, changed)
	// The document comes back unchanged, never half-rewritten.
	assert.Equal(t, in, out)
}

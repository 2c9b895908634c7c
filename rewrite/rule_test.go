package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixLine runs the full default rule set over a single line and returns the
// resulting document.
func fixLine(t *testing.T, line string) string {
	t.Helper()
	out, _, err := New(Options{}).Transform(line)
	require.NoError(t, err)
	return out
}

func TestBracketIndexRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "missing closing bracket before chain",
			in:   `results[0.Value.Should().Be(5);`,
			want: `results[0].Value.Should().Be(5);`,
		},
		{
			name: "every indexable name",
			in:   `entities[1.Id; items[2.Name; list[3.Count; entries[10.Key;`,
			want: `entities[1].Id; items[2].Name; list[3].Count; entries[10].Key;`,
		},
		{
			name: "unlisted identifier left alone",
			in:   `rows[0.Value.Should().Be(5);`,
			want: `rows[0.Value.Should().Be(5);`,
		},
		{
			name: "already correct access untouched",
			in:   `results[0].Value.Should().Be(5);`,
			want: `results[0].Value.Should().Be(5);`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixLine(t, tt.in))
		})
	}
}

func TestLambdaPredicateRepair(t *testing.T) {
	in := `results.All(r =.Should().BeGreaterThan(r.Version == 1));`
	want := `results.All(r => r.Version == 1).Should().BeTrue();`
	assert.Equal(t, want, fixLine(t, in))
}

func TestWrappedCallRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "assertion wrapped into call parens",
			in:   `exists(.Should().BeTrue());`,
			want: `exists.Should().BeTrue();`,
		},
		{
			name: "false variant",
			in:   `deleted(.Should().BeFalse());`,
			want: `deleted.Should().BeFalse();`,
		},
		{
			name: "null variant",
			in:   `entity(.Should().BeNull());`,
			want: `entity.Should().BeNull();`,
		},
		{
			name: "first with hoisted property",
			in:   `results.First(.Should().BeTrue().IsActive);`,
			want: `results.First().IsActive.Should().BeTrue();`,
		},
		{
			name: "first with hoisted property false",
			in:   `results.First(.Should().BeFalse().IsDeleted);`,
			want: `results.First().IsDeleted.Should().BeFalse();`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixLine(t, tt.in))
		})
	}
}

func TestContainmentRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "doubled wrapping with trailing paren",
			in:   `sql.Contains("SELECT").Should().BeTrue())`,
			want: `sql.Should().Contain("SELECT")`,
		},
		{
			name: "plain wrapping with semicolon",
			in:   `sql.Contains("WHERE Id = @Id").Should().BeTrue();`,
			want: `sql.Should().Contain("WHERE Id = @Id");`,
		},
		{
			name: "assertion mangled inside the literal argument",
			in:   `sql.Contains("INSERT".Should().BeTrue());`,
			want: `sql.Should().Contain("INSERT");`,
		},
		{
			name: "assertion mangled inside an identifier argument",
			in:   `sql.Contains(expectedClause.Should().BeTrue());`,
			want: `sql.Should().Contain(expectedClause);`,
		},
		{
			name: "stray trailing paren on converted form",
			in:   `    sql.Should().Contain("UPDATE"));`,
			want: `    sql.Should().Contain("UPDATE");`,
		},
		{
			name: "nested call keeps its parens",
			in:   `Verify(sql.Should().Contain("DELETE"));`,
			want: `Verify(sql.Should().Contain("DELETE"));`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixLine(t, tt.in))
		})
	}
}

func TestComparisonRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "temporal greater-than",
			in:   `(startTime > endTime).Should().BeTrue()`,
			want: `startTime.Should().BeAfter(endTime)`,
		},
		{
			name: "temporal less-than",
			in:   `(created.Date < cutoff.Date).Should().BeTrue();`,
			want: `created.Date.Should().BeBefore(cutoff.Date);`,
		},
		{
			name: "numeric greater-than",
			in:   `(count > 0).Should().BeTrue()`,
			want: `count.Should().BeGreaterThan(0)`,
		},
		{
			name: "numeric less-than",
			in:   `(attempts < maxRetries).Should().BeTrue();`,
			want: `attempts.Should().BeLessThan(maxRetries);`,
		},
		{
			name: "bare comparison without wrapping parens",
			in:   `    result.Count > 0.Should().BeTrue();`,
			want: `    result.Count.Should().BeGreaterThan(0);`,
		},
		{
			name: "valid lambda predicate is never rewrapped",
			in:   `results.All(r => r.Version > 1).Should().BeTrue();`,
			want: `results.All(r => r.Version > 1).Should().BeTrue();`,
		},
		{
			name: "temporal keyword anywhere on the line wins",
			in:   `(responseMs > limit).Should().BeTrue(); // Time budget`,
			want: `responseMs.Should().BeAfter(limit); // Time budget`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixLine(t, tt.in))
		})
	}
}

func TestMethodNameRemap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "temporal inclusive lower bound",
			in:   `order.CreatedDate.Should().BeGreaterThanOrEqualTo(start);`,
			want: `order.CreatedDate.Should().BeOnOrAfter(start);`,
		},
		{
			name: "temporal inclusive upper bound short spelling",
			in:   `lastModifiedTime.Should().BeLessOrEqualTo(now);`,
			want: `lastModifiedTime.Should().BeOnOrBefore(now);`,
		},
		{
			name: "temporal strict bounds",
			in:   `expiryDate.Should().BeGreaterThan(issueDate);`,
			want: `expiryDate.Should().BeAfter(issueDate);`,
		},
		{
			name: "numeric line with temporal method",
			in:   `count.Should().BeAfter(5);`,
			want: `count.Should().BeGreaterThan(5);`,
		},
		{
			name: "numeric line with inclusive temporal method",
			in:   `version.Should().BeOnOrAfter(2);`,
			want: `version.Should().BeGreaterThanOrEqualTo(2);`,
		},
		{
			name: "numeric method on numeric line untouched",
			in:   `total.Should().BeGreaterThan(100);`,
			want: `total.Should().BeGreaterThan(100);`,
		},
		{
			name: "temporal method on temporal line untouched",
			in:   `timestamp.Should().BeAfter(start);`,
			want: `timestamp.Should().BeAfter(start);`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixLine(t, tt.in))
		})
	}
}

func TestGuardClassification(t *testing.T) {
	assert.True(t, isTemporal(`var x = DateTime.UtcNow;`))
	assert.True(t, isTemporal(`(startTime > endTime).Should().BeTrue()`))
	assert.True(t, isTemporal(`dueDate.Should().BeAfter(today);`))
	assert.False(t, isTemporal(`(count > 0).Should().BeTrue()`))

	// Documented blind spot: a numeric identifier containing a temporal
	// keyword is classified temporal.
	assert.True(t, isTemporal(`(elapsedTimeMs > budget).Should().BeTrue();`))
}

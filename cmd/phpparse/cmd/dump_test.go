package cmd

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/timglabisch/pico-php-parser/pkg/intern"
	"github.com/timglabisch/pico-php-parser/pkg/parser"
)

func dumpToString(t *testing.T, src string) string {
	t.Helper()
	in := intern.New()
	items, errs := parser.Parse([]byte(src), in, parser.Config{})
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	var sb strings.Builder
	d := &dumper{in: in, w: &sb}
	for _, item := range items {
		d.dump(item, 0)
	}
	return sb.String()
}

func TestDumpClassDecl(t *testing.T) {
	out := dumpToString(t, `<?php
class Point {
	public function __construct(
		public readonly int $x,
		public readonly int $y,
	) {}

	public function length(): float {
		return sqrt($this->x ** 2 + $this->y ** 2);
	}
}
`)
	snaps.MatchSnapshot(t, out)
}

func TestDumpControlFlow(t *testing.T) {
	out := dumpToString(t, `<?php
foreach ($items as $k => $v) {
	if ($v > 0) {
		echo $k;
	} elseif ($v < 0) {
		continue;
	} else {
		break;
	}
}
`)
	snaps.MatchSnapshot(t, out)
}

func TestDumpExpressionPrecedence(t *testing.T) {
	out := dumpToString(t, `<?php
$result = $a + $b * $c ** 2 <=> $d ?: $e;
`)
	snaps.MatchSnapshot(t, out)
}

func TestDumpMatchAndArrow(t *testing.T) {
	out := dumpToString(t, `<?php
$label = match (true) {
	$x > 0, $x === 0 => 'nonneg',
	default => 'neg',
};
$square = fn($n) => $n * $n;
`)
	snaps.MatchSnapshot(t, out)
}

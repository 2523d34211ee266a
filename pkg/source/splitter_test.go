package source

import "testing"

func TestSplitPlainText(t *testing.T) {
	segs := Split([]byte("hello world"), Config{})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].Kind != TextSegment || string(segs[0].Bytes) != "hello world" {
		t.Fatalf("segs[0] = %+v, want TextSegment %q", segs[0], "hello world")
	}
}

func TestSplitTextCodeText(t *testing.T) {
	src := "before<?php echo 1; ?>after"
	segs := Split([]byte(src), Config{})
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].Kind != TextSegment || string(segs[0].Bytes) != "before" {
		t.Errorf("segs[0] = %+v, want TextSegment %q", segs[0], "before")
	}
	if segs[1].Kind != CodeSegment || string(segs[1].Bytes) != " echo 1; " {
		t.Errorf("segs[1] = %+v, want CodeSegment %q", segs[1], " echo 1; ")
	}
	if segs[2].Kind != TextSegment || string(segs[2].Bytes) != "after" {
		t.Errorf("segs[2] = %+v, want TextSegment %q", segs[2], "after")
	}
}

func TestSplitUnclosedCodeRunsToEOF(t *testing.T) {
	segs := Split([]byte("<?php echo 1;"), Config{})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].Kind != CodeSegment || string(segs[0].Bytes) != " echo 1;" {
		t.Fatalf("segs[0] = %+v, want CodeSegment %q", segs[0], " echo 1;")
	}
}

func TestSplitCloseTagConsumesTrailingNewline(t *testing.T) {
	src := "<?php echo 1; ?>\nafter"
	segs := Split([]byte(src), Config{})
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	if string(segs[1].Bytes) != "after" {
		t.Errorf("segs[1].Bytes = %q, want %q", segs[1].Bytes, "after")
	}
}

func TestSplitShortOpenTagRequiresConfig(t *testing.T) {
	src := "<? echo 1; ?>"
	segs := Split([]byte(src), Config{})
	if len(segs) != 1 || segs[0].Kind != TextSegment {
		t.Fatalf("without ShortOpenTags, %q should stay a single text segment, got %+v", src, segs)
	}

	segs = Split([]byte(src), Config{ShortOpenTags: true})
	if len(segs) != 1 || segs[0].Kind != CodeSegment {
		t.Fatalf("with ShortOpenTags, %q should become a code segment, got %+v", src, segs)
	}
}

func TestSplitShortEchoTag(t *testing.T) {
	segs := Split([]byte("<?= $x ?>"), Config{ShortEcho: true})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if !segs[0].ShortEcho {
		t.Errorf("ShortEcho should be true for a <?= tag")
	}
	if string(segs[0].Bytes) != " $x " {
		t.Errorf("Bytes = %q, want %q", segs[0].Bytes, " $x ")
	}
}

func TestSplitShortEchoTagRequiresConfig(t *testing.T) {
	src := "<?= $x ?>"
	segs := Split([]byte(src), Config{})
	if len(segs) != 1 || segs[0].Kind != TextSegment {
		t.Fatalf("without ShortEcho, %q should stay a single text segment, got %+v", src, segs)
	}
}

func TestSplitMultipleCodeRegions(t *testing.T) {
	src := "a<?php echo 1; ?>b<?php echo 2; ?>c"
	segs := Split([]byte(src), Config{})
	if len(segs) != 5 {
		t.Fatalf("got %d segments, want 5: %+v", len(segs), segs)
	}
	kinds := []SegmentKind{TextSegment, CodeSegment, TextSegment, CodeSegment, TextSegment}
	for i, k := range kinds {
		if segs[i].Kind != k {
			t.Errorf("segs[%d].Kind = %v, want %v", i, segs[i].Kind, k)
		}
	}
}

func TestSplitOffsetsAreAbsolute(t *testing.T) {
	src := "ab<?php cd ?>ef"
	segs := Split([]byte(src), Config{})
	if segs[0].Lo != 0 || segs[0].Hi != 2 {
		t.Errorf("segs[0] offsets = %d,%d, want 0,2", segs[0].Lo, segs[0].Hi)
	}
	if segs[1].Lo != 7 || segs[1].Hi != 11 {
		t.Errorf("segs[1] offsets = %d,%d, want 7,11", segs[1].Lo, segs[1].Hi)
	}
	if segs[2].Lo != 13 || segs[2].Hi != 15 {
		t.Errorf("segs[2] offsets = %d,%d, want 13,15", segs[2].Lo, segs[2].Hi)
	}
}

func TestSplitCaseInsensitivePhpTag(t *testing.T) {
	segs := Split([]byte("<?PHP echo 1; ?>"), Config{})
	if len(segs) != 1 || segs[0].Kind != CodeSegment {
		t.Fatalf("<?PHP should be recognized as an open tag, got %+v", segs)
	}
}

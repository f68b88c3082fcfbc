package status

import "testing"

func TestParseStorageForm(t *testing.T) {
	for _, tag := range Tags() {
		got, err := Parse(string(tag))
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tag, err)
		}
		if got != tag {
			t.Errorf("Parse(%q) = %q, want %q", tag, got, tag)
		}
	}
}

func TestParseDisplayForm(t *testing.T) {
	cases := []struct {
		in   string
		want Tag
	}{
		{"Favorite", TagFavorite},
		{"Want to Play", TagWantToPlay},
		{"PLAYED", TagPlayed},
		{"Don't Have ROM", TagNoRom},
		{"not playable", TagNotWorking},
		{"  favorite  ", TagFavorite},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "starred", "favourite", "none"} {
		if got, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) = %q, want error", in, got)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, tag := range Tags() {
		if err := Validate(tag); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tag, err)
		}
	}
	if err := Validate(TagNone); err == nil {
		t.Error("Validate(TagNone) = nil, want error")
	}
	if err := Validate(Tag("bogus")); err == nil {
		t.Error("Validate(bogus) = nil, want error")
	}
}

func TestLabelCoversAllTags(t *testing.T) {
	for _, tag := range Tags() {
		if Label(tag) == "" {
			t.Errorf("Label(%q) is empty", tag)
		}
	}
	if Label(TagNone) != "" {
		t.Errorf("Label(TagNone) = %q, want empty", Label(TagNone))
	}
}

package services

import "testing"

func TestComputeInitials(t *testing.T) {
  cases := []struct {
    name string
    in   string
    want string
  }{
    {"two words", "Jamie Rivera", "JR"},
    {"single word", "Jamie", "J"},
    {"lowercase", "jamie rivera", "JR"},
    {"extra words ignored", "Jamie Q Rivera", "JQ"},
    {"empty", "", "?"},
    {"whitespace only", "   ", "?"},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := computeInitials(tc.in); got != tc.want {
        t.Fatalf("computeInitials(%q) = %q, want %q", tc.in, got, tc.want)
      }
    })
  }
}

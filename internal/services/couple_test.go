package services

import (
  "strings"
  "testing"
)

func TestNewInviteCodeShape(t *testing.T) {
  for i := 0; i < 50; i++ {
    code, err := newInviteCode()
    if err != nil {
      t.Fatalf("newInviteCode returned error: %v", err)
    }
    if len(code) != inviteCodeLength {
      t.Fatalf("code %q has length %d, want %d", code, len(code), inviteCodeLength)
    }
    for _, r := range code {
      if !strings.ContainsRune(inviteCodeCharset, r) {
        t.Fatalf("code %q contains %q outside the charset", code, r)
      }
    }
  }
}

func TestNewInviteCodeAvoidsAmbiguousCharacters(t *testing.T) {
  for _, bad := range []string{"0", "O", "1", "I", "L"} {
    if strings.Contains(inviteCodeCharset, bad) {
      t.Fatalf("charset contains ambiguous character %q", bad)
    }
  }
}

package model

import "testing"

func TestCommitMessage(t *testing.T) {
	cmt := &Commit{Subject: "cool subject"}
	if msg := cmt.Message(); msg != "cool subject" {
		t.Fatal("expected subject only, got", msg)
	}
	cmt = &Commit{Subject: "cool subject", Body: "cool body"}
	expect := "cool subject\n\ncool body"
	if msg := cmt.Message(); msg != expect {
		t.Fatalf("expected %q, got %q", expect, msg)
	}
}

package cmd

import "testing"

func Test_IsExitInput(t *testing.T) {
	exits := []string{
		"",
		"   \t",
		"bounce",
		"  bounce  ",
		"ok bounce ok",
		"bounce()",
		`"bounce"`, // word matching ignores syntax, quoted or not
	}
	for _, in := range exits {
		if !isExitInput(in) {
			t.Fatalf("%q should end the session", in)
		}
	}

	stays := []string{
		"let x = 1;",
		"bouncer", // not a whole word
		"trampoline_jump",
	}
	for _, in := range stays {
		if isExitInput(in) {
			t.Fatalf("%q must not end the session", in)
		}
	}
}

func Test_RunFile_IgnoresOtherExtensions(t *testing.T) {
	if err := runFile("notes.txt"); err != nil {
		t.Fatalf("non-jive files are ignored, got %v", err)
	}
}

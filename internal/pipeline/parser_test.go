package pipeline

import "testing"

func mustParse(t *testing.T, tokens Tokens) []Pipeline {
	t.Helper()
	pls, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return pls
}

func words(ws ...string) Tokens {
	ts := make(Tokens, len(ws))
	for i, w := range ws {
		ts[i] = Token{Sep: SepNone, Word: w}
	}
	return ts
}

func TestParseSingleCommand(t *testing.T) {
	pls := mustParse(t, words("echo", "hi"))
	if len(pls) != 1 {
		t.Fatalf("expected 1 pipeline, got %d", len(pls))
	}
	if len(pls[0].Commands) != 1 || pls[0].Commands[0].Argv[0] != "echo" {
		t.Fatalf("unexpected pipeline: %+v", pls[0])
	}
	if pls[0].Next != LinkEnd {
		t.Fatalf("expected LinkEnd, got %v", pls[0].Next)
	}
}

func TestParsePipe(t *testing.T) {
	pls := mustParse(t, words("echo", "one", "|", "wc", "-c"))
	if len(pls) != 1 || len(pls[0].Commands) != 2 {
		t.Fatalf("expected 1 pipeline with 2 commands, got %+v", pls)
	}
	if pls[0].Commands[1].Argv[0] != "wc" {
		t.Fatalf("unexpected second command: %+v", pls[0].Commands[1])
	}
}

func TestParseSequencing(t *testing.T) {
	pls := mustParse(t, words("false", "&&", "echo", "x", ";", "echo", "y"))
	if len(pls) != 3 {
		t.Fatalf("expected 3 pipelines, got %d", len(pls))
	}
	if pls[0].Next != LinkAnd {
		t.Fatalf("expected first pipeline to be LinkAnd, got %v", pls[0].Next)
	}
	if pls[1].Next != LinkSeq {
		t.Fatalf("expected second pipeline to be LinkSeq, got %v", pls[1].Next)
	}
	if pls[2].Next != LinkEnd {
		t.Fatalf("expected third pipeline to be LinkEnd, got %v", pls[2].Next)
	}
}

func TestParseBackground(t *testing.T) {
	pls := mustParse(t, words("sleep", "10", "&"))
	if len(pls) != 1 || !pls[0].Background {
		t.Fatalf("expected a single backgrounded pipeline, got %+v", pls)
	}
}

func TestParseRedirections(t *testing.T) {
	pls := mustParse(t, words("cmd", "<", "in", ">", "out", "2>", "err", "2>&1"))
	redirs := pls[0].Commands[0].Redirs
	if len(redirs) != 4 {
		t.Fatalf("expected 4 redirections, got %+v", redirs)
	}
	if redirs[0].Op != RedirRead || redirs[0].Target != "in" {
		t.Fatalf("unexpected read redirection: %+v", redirs[0])
	}
	if redirs[3].Op != RedirDup || redirs[3].FD != 2 || redirs[3].Target != "1" {
		t.Fatalf("unexpected dup redirection: %+v", redirs[3])
	}
}

func TestParseEmptyPipelineIsSyntaxError(t *testing.T) {
	_, err := Parse(words("|", "wc"))
	if err == nil {
		t.Fatalf("expected a syntax error for a leading pipe")
	}
}

func TestParseRedirectionWithNoCommandIsSyntaxError(t *testing.T) {
	_, err := Parse(words(">", "out"))
	if err == nil {
		t.Fatalf("expected a syntax error for a redirection with no command")
	}
}

func TestParseHeredocIsSyntaxError(t *testing.T) {
	_, err := Parse(words("cat", "<<", "EOF"))
	if err == nil {
		t.Fatalf("expected a syntax error for an unsupported here-document")
	}
}

func TestParseEmptyInputIsNotAnError(t *testing.T) {
	pls := mustParse(t, Tokens{})
	if len(pls) != 0 {
		t.Fatalf("expected no pipelines for empty input, got %+v", pls)
	}
}

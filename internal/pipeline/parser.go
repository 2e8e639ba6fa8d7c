package pipeline

// Parse groups an already-expanded Tokens sequence into a list of Pipeline
// (spec §4.C). Redirection tokens bind to the Command being built; `|`
// starts a new Command within the current Pipeline; `;`, `&&`, `||`, `&`,
// or end-of-input close the current Pipeline.
func Parse(tokens Tokens) ([]Pipeline, error) {
	var pipelines []Pipeline
	var cur Pipeline
	var cmd Command

	flushCommand := func() error {
		if len(cmd.Argv) == 0 && len(cmd.Redirs) == 0 {
			return nil
		}
		if len(cmd.Argv) == 0 {
			return &SyntaxErr{Detail: "redirection with no command"}
		}
		cur.Commands = append(cur.Commands, cmd)
		cmd = Command{}
		return nil
	}

	flushPipeline := func(next Link) error {
		if err := flushCommand(); err != nil {
			return err
		}
		if len(cur.Commands) == 0 {
			return &SyntaxErr{Detail: "empty pipeline"}
		}
		cur.Next = next
		pipelines = append(pipelines, cur)
		cur = Pipeline{}
		return nil
	}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if tok.Sep != SepNone {
			cmd.Argv = append(cmd.Argv, tok.Word)
			i++
			continue
		}

		switch tok.Word {
		case "|":
			if len(cmd.Argv) == 0 {
				return nil, &SyntaxErr{Detail: "empty pipeline segment before '|'"}
			}
			if err := flushCommand(); err != nil {
				return nil, err
			}
			i++

		case ";":
			if err := flushPipeline(LinkSeq); err != nil {
				return nil, err
			}
			i++

		case "&&":
			if err := flushPipeline(LinkAnd); err != nil {
				return nil, err
			}
			i++

		case "||":
			if err := flushPipeline(LinkOr); err != nil {
				return nil, err
			}
			i++

		case "&":
			cur.Background = true
			if err := flushPipeline(LinkSeq); err != nil {
				return nil, err
			}
			i++

		case "<":
			target, next, err := requireTarget(tokens, i)
			if err != nil {
				return nil, err
			}
			cmd.Redirs = append(cmd.Redirs, Redir{FD: 0, Op: RedirRead, Target: target})
			i = next

		case ">":
			target, next, err := requireTarget(tokens, i)
			if err != nil {
				return nil, err
			}
			cmd.Redirs = append(cmd.Redirs, Redir{FD: 1, Op: RedirWrite, Target: target})
			i = next

		case ">>":
			target, next, err := requireTarget(tokens, i)
			if err != nil {
				return nil, err
			}
			cmd.Redirs = append(cmd.Redirs, Redir{FD: 1, Op: RedirAppend, Target: target})
			i = next

		case "2>":
			target, next, err := requireTarget(tokens, i)
			if err != nil {
				return nil, err
			}
			cmd.Redirs = append(cmd.Redirs, Redir{FD: 2, Op: RedirWrite, Target: target})
			i = next

		case "2>&1":
			cmd.Redirs = append(cmd.Redirs, Redir{FD: 2, Op: RedirDup, Target: "1"})
			i++

		case "<<":
			return nil, &SyntaxErr{Detail: "here-documents are not supported"}

		default:
			cmd.Argv = append(cmd.Argv, tok.Word)
			i++
		}
	}

	pending := len(cmd.Argv) > 0 || len(cmd.Redirs) > 0 || len(cur.Commands) > 0
	if pending {
		if err := flushPipeline(LinkEnd); err != nil {
			return nil, err
		}
	}
	return pipelines, nil
}

func requireTarget(tokens Tokens, opIndex int) (string, int, error) {
	if opIndex+1 >= len(tokens) {
		return "", 0, &SyntaxErr{Detail: "redirection with no target"}
	}
	return tokens[opIndex+1].Word, opIndex + 2, nil
}

package edn

// readSymbol reads a symbol whose first rune is already in the token.
func (r *Reader) readSymbol() (Value, error) {
	return r.readName(KindSymbol)
}

// readName reads the rest of a symbol or keyword token and splits it at its slash.
// "/" alone is the symbol named "/"; otherwise namespace and name must both be
// non-empty and there may be only one slash.
func (r *Reader) readName(kind Kind) (Value, error) {
	for {
		c := r.buf.Read()
		if IsTerminator(c) {
			r.buf.Unread()
			break
		}
	}

	tok := r.buf.Token()
	if len(tok) == 0 {
		return r.fail(ErrInvalidSymbol, ":")
	}

	slash := -1
	for i, c := range tok {
		if c != '/' {
			continue
		}
		if slash >= 0 {
			return r.fail(ErrInvalidSymbol, string(tok))
		}
		slash = i
	}

	switch {
	case slash < 0:
		name := string(tok)
		if kind == KindSymbol {
			switch name {
			case "nil":
				return Nil, nil
			case "true":
				return Bool(true), nil
			case "false":
				return Bool(false), nil
			}
		}
		return Value{Kind: kind, Text: name}, nil
	case len(tok) == 1 && kind == KindSymbol:
		return Value{Kind: KindSymbol, Text: "/"}, nil
	case slash == 0 || slash == len(tok)-1:
		return r.fail(ErrInvalidSymbol, string(tok))
	}

	return Value{
		Kind:      kind,
		Namespace: string(tok[:slash]),
		Text:      string(tok[slash+1:]),
	}, nil
}

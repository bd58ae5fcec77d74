package aclmsg

import "sort"

// decoder converts a decoded JSON value tree into an ACLAccountsMessage,
// collecting issues in a deterministic order.
type decoder struct {
	opt    ParseOpt
	issues Issues
}

func decodeMessage(v any, opt ParseOpt) (ACLAccountsMessage, error) {
	d := &decoder{opt: opt}
	msg := d.message(v, RootPath())
	if len(d.issues) > 0 {
		return ACLAccountsMessage{}, d.issues
	}
	return msg, nil
}

func (d *decoder) report(it Issue) { d.issues = append(d.issues, it) }

// stop reports whether decoding must end because of FailFast.
func (d *decoder) stop() bool { return d.opt.FailFast && len(d.issues) > 0 }

func (d *decoder) expectObject(v any, p PathRef) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		it := p.Issue(CodeInvalidType, nil, map[string]any{"expected": "object", "got": jsonShape(v)})
		it.Hint = "expected object"
		d.report(it)
	}
	return m, ok
}

func (d *decoder) message(v any, p PathRef) ACLAccountsMessage {
	out := ACLAccountsMessage{Metadata: Metadata{}}
	obj, ok := d.expectObject(v, p)
	if !ok {
		return out
	}

	if raw, present := obj[fieldAccounts]; present {
		out.Accounts = d.accounts(raw, p.Field(fieldAccounts))
	} else {
		d.report(p.Field(fieldAccounts).Issue(CodeRequired, &MissingRequiredFieldError{Field: fieldAccounts}, map[string]any{"field": fieldAccounts}))
	}
	if d.stop() {
		return out
	}

	if raw, present := obj[fieldMetadata]; present {
		if m, ok := d.expectObject(raw, p.Field(fieldMetadata)); ok {
			out.Metadata = Metadata(m)
		}
	}
	if d.stop() || d.opt.Unknown != UnknownStrict {
		return out
	}

	for _, k := range sortedKeys(obj) {
		switch k {
		case fieldAccounts, fieldMetadata, becCodecKey:
			continue
		}
		d.report(p.Field(k).Issue(CodeUnknownKey, nil, map[string]any{"key": k}))
		if d.stop() {
			break
		}
	}
	return out
}

func (d *decoder) accounts(v any, p PathRef) Accounts {
	obj, ok := d.expectObject(v, p)
	if !ok {
		return nil
	}
	out := make(Accounts, len(obj))
	for _, id := range sortedKeys(obj) {
		perms, ok := d.permissions(obj[id], p.Field(id))
		if d.stop() {
			return out
		}
		if ok {
			out[id] = perms
		}
	}
	return out
}

func (d *decoder) permissions(v any, p PathRef) (Permissions, bool) {
	obj, ok := d.expectObject(v, p)
	if !ok {
		return nil, false
	}
	out := make(Permissions, len(obj))
	valid := true
	for _, wire := range sortedKeys(obj) {
		kp := p.Field(wire)
		key, err := ParseAccountKey(wire)
		if err != nil {
			it := kp.Issue(CodeInvalidEnum, err, map[string]any{"value": wire})
			it.Hint = "expected one of: categories, keys, channels, commands, profile"
			d.report(it)
			valid = false
			if d.stop() {
				return nil, false
			}
			continue
		}
		val, err := ParseAccountValue(obj[wire])
		if err != nil {
			it := kp.Issue(CodeNoMatchingVariant, err, map[string]any{"got": jsonShape(obj[wire])})
			it.Hint = "expected array of strings or string"
			d.report(it)
			valid = false
			if d.stop() {
				return nil, false
			}
			continue
		}
		out[key] = val
	}
	return out, valid
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package aclmsg provides a typed binding for the ACLAccountsMessage schema:
//
// - AccountKey, the closed enum of permission categories (categories, keys, channels, commands, profile)
// - AccountValue, the untagged union of a string list or a single string
// - ACLAccountsMessage with required accounts and an optional metadata bag
// - Builder, which collects conversion errors and reports the first one in declared order
// - A stable error model via Issues (JSON Pointer, code, message, typed cause)
// - Token-stream decoding with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place wire codecs under codec/, token sources under source/, and the CLI under cmd/aclmsg.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	m, err := aclmsg.ParseFrom(ctx, aclmsg.JSONBytes(data))
//	m, err := aclmsg.StreamParse(ctx, r, aclmsg.ParseOpt{Unknown: aclmsg.UnknownStrict})
//
//	m, err := aclmsg.NewBuilder().
//		Accounts(aclmsg.Accounts{"svc1": {aclmsg.AccountKeyKeys: aclmsg.AccountValueFromString("*")}}).
//		Build()
//	wire, err := aclmsg.Marshal(m)
package aclmsg

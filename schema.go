package aclmsg

import (
	js "github.com/reoring/aclmsg/jsonschema"
)

const messageDescription = "Message for ACL accounts\n\nArgs:\n    accounts (dict): ACL accounts"

// JSONSchema projects ACLAccountsMessage into its JSON Schema document.
// A fresh value is returned on every call, so callers may modify it.
func JSONSchema() *js.Schema {
	return &js.Schema{
		SchemaURI:   js.Draft,
		Title:       MessageTypeName,
		Description: messageDescription,
		Type:        "object",
		Required:    []string{fieldAccounts},
		Properties: map[string]*js.Schema{
			fieldAccounts: {
				Title:                "Accounts",
				Type:                 "object",
				AdditionalProperties: permissionsSchema(),
			},
			fieldMetadata: {
				Title:                "Metadata",
				Type:                 "object",
				AdditionalProperties: true,
			},
		},
	}
}

func permissionsSchema() *js.Schema {
	return &js.Schema{
		Type:                 "object",
		AdditionalProperties: AccountValueSchema(),
		PropertyNames:        AccountKeySchema(),
	}
}

// AccountKeySchema is the enum schema of the permission keys.
func AccountKeySchema() *js.Schema {
	names := accountKeyWireNames()
	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}
	return &js.Schema{Enum: enum}
}

// AccountValueSchema is the untagged union schema of a permission value. The
// branch order matches the order ParseAccountValue tries them in.
func AccountValueSchema() *js.Schema {
	return &js.Schema{AnyOf: []*js.Schema{
		{Type: "array", Items: js.Leaf("string")},
		js.Leaf("string"),
	}}
}

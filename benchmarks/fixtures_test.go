package aclmsg_test

import (
	"bytes"
	"strconv"
)

// generateACLMessage returns an ACLAccountsMessage document with numAccounts
// accounts, each carrying every permission key, and a metadata bag of
// metaFields numeric entries.
func generateACLMessage(numAccounts, metaFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numAccounts*160 + metaFields*24)
	buf.WriteString(`{"accounts":{`)
	for i := 0; i < numAccounts; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		n := strconv.Itoa(i)
		buf.WriteString(`"svc_` + n + `":{`)
		buf.WriteString(`"categories":["+@all","-@dangerous"],`)
		buf.WriteString(`"keys":"svc_` + n + `:*",`)
		buf.WriteString(`"channels":[],`)
		buf.WriteString(`"commands":["+get","+set","-flushall"],`)
		buf.WriteString(`"profile":"user_` + n + `"}`)
	}
	buf.WriteByte('}')
	if metaFields > 0 {
		buf.WriteString(`,"metadata":{`)
		for k := 0; k < metaFields; k++ {
			if k > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`"m` + strconv.Itoa(k) + `":`)
			buf.WriteString(strconv.Itoa(k) + "." + strconv.Itoa(k%7) + "5")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func smallACLJSON() []byte {
	return []byte(`{"accounts":{"svc1":{"categories":["+@all"],"keys":"*"}}}`)
}

// 10k accounts ~ O(1-2MB)
const (
	hugeAccounts = 10000
	hugeMeta     = 64
)

//go:build stdjson

package compare_test

import "github.com/reoring/aclmsg"

func init() { aclmsg.UseStdlibJSONDriver() }

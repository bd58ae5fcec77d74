//go:build stdjson

package aclmsg_test

import "github.com/reoring/aclmsg"

func init() { aclmsg.UseStdlibJSONDriver() }

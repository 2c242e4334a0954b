package http

// VerifySlackSignature is exported for testing
var VerifySlackSignature = verifySlackSignature

// DumpSlackPayload is exported for testing
var DumpSlackPayload = dumpSlackPayload

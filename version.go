package jive

// Version is the release version of the jive toolchain.
var Version = "0.2.0"

// BuildDate is stamped by the build; "unknown" for plain go build.
var BuildDate = "unknown"

package utils

// REVISION is stamped at build time with -ldflags "-X ...utils.REVISION=<sha>".
var REVISION = "dev"

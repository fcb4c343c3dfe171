package attlookup

// Version is overridden at build time with -ldflags "-X github.com/aretw0/attlookup.Version=...".
var Version = "dev"

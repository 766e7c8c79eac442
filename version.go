package medchat

// Version is set at build time with -ldflags "-X github.com/a-h/medchat.Version=...".
var Version = "dev"

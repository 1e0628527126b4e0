package model

// Version is the release version, bumped on tagged releases.
const Version = "0.4.1"

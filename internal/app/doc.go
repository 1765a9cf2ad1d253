// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the construction lifecycle (load input,
// parse, order, execute, check, hand off to the executioner), decoupled from
// any specific entrypoint like a CLI or server.
package app

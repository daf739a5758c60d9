// Package domain defines the core entities of the language-tutoring
// application: users, practice transcripts, chat messages, vocabulary
// entries, and language tags. Entities validate themselves and carry no
// persistence or transport concerns.
package domain

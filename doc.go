// collaborativefolders is a web service that renders the collaborative-folder
// activity of a learning platform and provisions per-user access links to a
// shared remote storage folder.
package main

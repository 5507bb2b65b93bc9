// Package watch monitors the inbox directory for dropped board images and
// feeds them to the analyzer once their contents settle.
package watch

// Command visionboard analyzes vision-board images into structured life-design
// plans and manages the resulting record collection from the terminal.
package main

// Package ui contains the terminal user interface: the interactive
// search, choose and download loop, the results table and prompts. It only
// talks to the core through the search.Searcher and download.Downloader
// interfaces.
package ui

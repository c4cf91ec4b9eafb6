// Package browser drives a headless Chrome instance over the DevTools
// protocol: it navigates to pages, injects the axe-core engine, and
// returns decoded scan results. One Driver owns one browser process;
// each page visit runs in its own tab context.
package browser

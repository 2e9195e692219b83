// Package clipboard reads images from and writes text to the system clipboard.
//
// Both directions probe for the native capability first and fall back when it
// is missing:
//
//   - Reading: the native provider reads the clipboard's image format. When it
//     is unavailable or holds no image, the HTML fragment that the browser
//     staged in its paste container is searched for an embedded base64 image.
//   - Writing: the native provider writes the text directly. When it is
//     unavailable, Legacy stages the text in a scratch file and hands it to the
//     platform copy command, removing the staged file afterwards.
//
// Callers use Reader and Copier and never learn which path served them.
package clipboard

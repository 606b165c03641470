// Package tokens defines the word-level geometry that every other package in
// fieldbox works on.
//
// A Token is one word on a page in the coordinate space of whatever produced
// it. Extractors disagree about the vertical axis: pdfplumber and hOCR report
// distances from the top edge (top/bottom), while raw PDF text operators and
// some layout libraries report y0/y1 measured from the bottom edge. The
// convention a token arrived in is recorded once, as a Vertical tag, and
// NewPage resolves the missing half of the geometry so consumers never branch
// on it again.
//
// Key Types:
//
// - Token: A word's text and bounding geometry
// - Vertical: Which vertical convention the extractor supplied
// - Page: An ordered word list plus page width and height
//
// Main Functions:
//
// - NewPage: Builds a page, flooring its size and resolving token geometry
// - FromMap: Builds a token from a loosely typed word record
// - DecodePages: Reads pdfplumber-style JSON pages
package tokens

// Package hocr parses hOCR, the HTML-based format OCR engines such as
// Tesseract emit, and turns its recognised words into positioned tokens.
//
// The hOCR hierarchy is flattened to what word location needs:
// Document → Pages → Lines → Words. Areas and paragraphs are walked but
// not kept; words that sit outside any ocr_line are gathered into a line
// with an empty ID so reading order is preserved.
//
// Key Types:
//
// - HOCR: Top-level structure representing an entire hOCR document
// - Page: A single page with class 'ocr_page'
// - Line: A line of text with class 'ocr_line' (or similar line classes)
// - Word: A single word with class 'ocrx_word'
// - BoundingBox: A rectangle parsed from an hOCR 'bbox' property
//
// Main Functions:
//
// - ParseHOCR: Parses hOCR data from HTML into the object model
// - ToPages: Converts a parsed document into token pages
// - ExtractHOCRText: Concatenates the recognised text of every page
package hocr

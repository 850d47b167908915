package notion

import (
	"github.com/jomei/notionapi"
)

// Passage is one highlighted passage ready to be written to a page.
type Passage struct {
	ChapterTitle string
	Text         string
}

// Thought is one written note ready to be written to a page. Quote is
// the highlighted text the note was attached to, if any.
type Thought struct {
	ChapterTitle string
	Quote        string
	Comment      string
}

// highlightBlocks renders passages as bulleted list items. With
// byChapter, a heading block is emitted each time the chapter changes;
// passages must already be in chapter order.
func highlightBlocks(passages []Passage, byChapter bool) []notionapi.Block {
	var blocks []notionapi.Block

	currentChapter := ""
	for _, p := range passages {
		if byChapter && p.ChapterTitle != "" && p.ChapterTitle != currentChapter {
			currentChapter = p.ChapterTitle
			blocks = append(blocks, heading(p.ChapterTitle))
		}

		blocks = append(blocks, &notionapi.BulletedListItemBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeBulletedListItem,
			},
			BulletedListItem: notionapi.ListItem{
				RichText: richText(truncate(p.Text, maxRichTextLen)),
			},
		})
	}

	return blocks
}

// noteBlocks renders thoughts as quote + paragraph pairs. Grouping
// follows the same chapter heading rules as highlightBlocks.
func noteBlocks(thoughts []Thought, byChapter bool) []notionapi.Block {
	var blocks []notionapi.Block

	currentChapter := ""
	for _, t := range thoughts {
		if byChapter && t.ChapterTitle != "" && t.ChapterTitle != currentChapter {
			currentChapter = t.ChapterTitle
			blocks = append(blocks, heading(t.ChapterTitle))
		}

		if t.Quote != "" {
			blocks = append(blocks, &notionapi.QuoteBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeQuote,
				},
				Quote: notionapi.Quote{
					RichText: richText(truncate(t.Quote, maxRichTextLen)),
				},
			})
		}

		blocks = append(blocks, &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: richText(truncate(t.Comment, maxRichTextLen)),
			},
		})
	}

	return blocks
}

// heading builds a chapter heading block.
func heading(title string) notionapi.Block {
	return &notionapi.Heading2Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading2,
		},
		Heading2: notionapi.Heading{
			RichText: richText(title),
		},
	}
}

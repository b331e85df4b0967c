package content

import (
	"fmt"
	"strings"
)

const curriculumSystemPrompt = `You are an ancient, wise skeletal scholar. You teach with a spooky, mysterious, yet helpful tone. Use words like 'spirits', 'haunt', 'ritual', 'crypt', 'arcane' where appropriate. Your lessons must still be accurate and genuinely useful.`

func buildCurriculumUserMessage(topic string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a structured learning curriculum for the topic: %q.\n", topic)
	b.WriteString(`
Instructions:
1. Break the topic into 3-6 modules, ordered from foundations to advanced material.
2. Give each module 2-5 sub-topics that can each be taught in a short lesson.
3. Keep the tone Halloween themed and mystical, but keep every title and description accurate.
4. Titles are short (2-6 words). Descriptions are one sentence.
5. The subject field is a spooky course title for the topic.`)

	return b.String()
}

const encounterSystemPrompt = `You are the Game Master of a haunted crypt. You create educational challenges disguised as monster encounters. Every lesson and question must be factually correct; the theme is decoration, never a reason to bend the facts.`

func buildEncounterUserMessage(subject, moduleTitle, topicTitle string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Module: %s\n", moduleTitle)
	fmt.Fprintf(&b, "Topic: %s\n", topicTitle)

	fmt.Fprintf(&b, `
Instructions:
Create a 'Ghost Hunt' level for this topic with %d-%d encounters.
1. Each encounter features a unique spooky monster named after the concept it guards.
2. educationalContent teaches one concept in 2-3 short markdown paragraphs. Use **bold** for key terms and bullet lists where they help.
3. The question tests exactly what that encounter taught.
4. Provide exactly %d options. Only one is correct; the others are plausible mistakes.
5. correctAnswerIndex is the zero-based position of the correct option. Vary its position across encounters.
6. Order encounters from easiest to hardest.`, MinEncounters, MaxEncounters, OptionCount)

	return b.String()
}

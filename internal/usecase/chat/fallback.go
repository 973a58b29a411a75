package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// noContextReplies are the canned answers used when retrieval found
// nothing to ground a response on.
var noContextReplies = map[domain.Language]string{
	domain.LanguageEnglish: "I don't have any relevant information in my knowledge base for this question. " +
		"Could you provide more details, or upload documents that cover this topic?",
	domain.LanguageArabic: "لا أملك معلومات ذات صلة بهذا السؤال في قاعدة المعرفة الحالية. " +
		"هل يمكنك تقديم تفاصيل أكثر أو رفع وثائق تغطي هذا الموضوع؟",
	domain.LanguageFrench: "Je n'ai pas d'informations pertinentes dans ma base de connaissances pour cette question. " +
		"Pourriez-vous donner plus de détails ou téléverser des documents sur ce sujet ?",
}

func noContextReply(language domain.Language) string {
	if reply, ok := noContextReplies[language]; ok {
		return reply
	}
	return noContextReplies[domain.DefaultLanguage]
}

// contextReplyIntros open a template answer that quotes the retrieved
// context verbatim. Used when no LLM provider is configured.
var contextReplyIntros = map[domain.Language]string{
	domain.LanguageEnglish: "Based on the available documents, here is the most relevant information:",
	domain.LanguageArabic:  "بناءً على الوثائق المتاحة، هذه هي المعلومات الأكثر صلة:",
	domain.LanguageFrench:  "D'après les documents disponibles, voici les informations les plus pertinentes :",
}

// StaticResponder implements domain.Responder without an LLM: it frames
// the retrieved chunks as the answer. Keeps the service usable when no
// generation provider is configured.
type StaticResponder struct{}

// Generate implements domain.Responder.
func (StaticResponder) Generate(
	_ context.Context, _ string, language domain.Language, contextChunks []domain.Chunk,
) (string, error) {
	intro, ok := contextReplyIntros[language]
	if !ok {
		intro = contextReplyIntros[domain.DefaultLanguage]
	}

	var b strings.Builder
	b.WriteString(intro)
	for _, c := range contextChunks {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "[%s] ", c.SourceFile)
		runes := []rune(c.Content)
		if len(runes) > 300 {
			b.WriteString(string(runes[:300]))
			b.WriteString("...")
		} else {
			b.WriteString(c.Content)
		}
	}
	return b.String(), nil
}

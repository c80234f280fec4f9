package llm

import "fmt"

// BlogPromptTemplate is the template for the blog-generation prompt. The
// model is instructed to answer with a bare JSON object; in practice it
// often wraps the object in markdown fences anyway, which the parser
// tolerates.
const BlogPromptTemplate = `You are an expert technical writer and software developer with deep knowledge of programming and web development.

Create a comprehensive, professional blog post about "%s" for a software developer's portfolio blog.

# REQUIREMENTS
- Write in a conversational but professional tone
- Target audience: fellow developers, potential employers, and tech enthusiasts
- Include practical examples and code snippets where relevant
- Structure with clear headings and subheadings using markdown
- Make it engaging and informative
- Length: 800-1200 words
- Include actionable takeaways
- Use markdown formatting for code blocks and emphasis
- Demonstrate expertise while being accessible to developers at different levels
- Include real-world examples and best practices
- Add relevant technical insights and current industry perspectives

# RESPONSE FORMAT
Your response MUST be valid JSON with the following structure. Return ONLY the JSON object, no additional text:

{
  "title": "An engaging title for the blog post (max 80 characters)",
  "content": "The full blog post content in markdown format with proper escaping",
  "excerpt": "A compelling 2-3 sentence excerpt that summarizes the post",
  "meta_title": "SEO optimized title (max 60 characters)",
  "meta_description": "SEO meta description (max 160 characters)",
  "tags": ["array", "of", "relevant", "technical", "tags"],
  "featured_image": "suggested image description for this topic",
  "reading_time": 5
}

# CRITICAL INSTRUCTIONS
1. Return ONLY valid JSON, no markdown code blocks or extra text
2. Properly escape all quotes and newlines in the content field
3. Ensure all JSON syntax is correct with no trailing commas
4. Make the content substantial and valuable
5. Include code examples where appropriate
6. Add proper markdown formatting in the content field`

// BuildBlogPrompt renders the blog-generation prompt for a topic.
func BuildBlogPrompt(topicText string) string {
	return fmt.Sprintf(BlogPromptTemplate, topicText)
}

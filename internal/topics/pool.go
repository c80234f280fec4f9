package topics

import "blogsmith/internal/core"

// categoryPool groups the topics belonging to one category.
type categoryPool struct {
	category core.Category
	topics   []string
}

// defaultPool is the static catalog of topics available for generation.
// It is loaded once at process start and never mutated.
var defaultPool = []categoryPool{
	{
		category: core.CategoryWebDevelopment,
		topics: []string{
			"Modern CSS Features and Best Practices",
			"Progressive Web Apps Development",
			"Web Performance Optimization Techniques",
			"Responsive Design Patterns",
			"Browser Security and HTTPS Implementation",
			"Web Accessibility Guidelines and Implementation",
			"JavaScript ES6+ Features and Usage",
			"Webpack and Build Tools Configuration",
			"Cross-Browser Compatibility Strategies",
			"Web Components and Custom Elements",
		},
	},
	{
		category: core.CategoryReactFrontend,
		topics: []string{
			"React Hooks Best Practices and Patterns",
			"State Management with Redux and Context API",
			"React Performance Optimization Techniques",
			"Server-Side Rendering with Next.js",
			"React Testing Strategies and Tools",
			"Component Architecture and Design Patterns",
			"React Router and Navigation Patterns",
			"Form Handling and Validation in React",
			"React Error Boundaries and Error Handling",
			"Custom Hooks Development and Reusability",
		},
	},
	{
		category: core.CategoryBackendAPIs,
		topics: []string{
			"RESTful API Design Principles",
			"GraphQL vs REST API Comparison",
			"Database Optimization and Indexing",
			"Authentication and Authorization Strategies",
			"Microservices Architecture Patterns",
			"API Rate Limiting and Security",
			"Caching Strategies for Backend Systems",
			"Message Queues and Asynchronous Processing",
			"Database Migration and Schema Management",
			"API Documentation and OpenAPI Specification",
		},
	},
	{
		category: core.CategoryDevOpsCloud,
		topics: []string{
			"Docker Containerization Best Practices",
			"Kubernetes Deployment Strategies",
			"CI/CD Pipeline Implementation",
			"Infrastructure as Code with Terraform",
			"Monitoring and Logging in Production",
			"Cloud Security and Compliance",
			"Auto-scaling and Load Balancing",
			"Backup and Disaster Recovery Strategies",
			"Blue-Green Deployment Techniques",
			"Cloud Cost Optimization Strategies",
		},
	},
	{
		category: core.CategoryAIMachine,
		topics: []string{
			"Introduction to Machine Learning for Developers",
			"AI Integration in Web Applications",
			"Natural Language Processing with JavaScript",
			"Computer Vision in Web Development",
			"Ethical AI Development Practices",
			"ML Model Deployment and Serving",
			"AI-Powered Code Generation Tools",
			"Chatbot Development with AI",
			"Recommendation Systems Implementation",
			"AI in Frontend Development",
		},
	},
	{
		category: core.CategoryCareerTips,
		topics: []string{
			"Code Review Best Practices",
			"Developer Productivity Tips and Tools",
			"Building a Strong Developer Portfolio",
			"Remote Work Strategies for Developers",
			"Technical Interview Preparation",
			"Open Source Contribution Guide",
			"Developer Career Progression Paths",
			"Learning New Technologies Effectively",
			"Building Professional Network as Developer",
			"Time Management for Software Developers",
		},
	},
}

package keywords

// Category groups related catalog terms.
type Category string

const (
	CategoryLanguages          Category = "languages"
	CategoryFrontendFrameworks Category = "frontend_frameworks"
	CategoryBackendFrameworks  Category = "backend_frameworks"
	CategoryDatabases          Category = "databases"
	CategoryCloudAWS           Category = "cloud_aws"
	CategoryCloudGCP           Category = "cloud_gcp"
	CategoryCloudAzure         Category = "cloud_azure"
	CategoryDevopsTools        Category = "devops_tools"
	CategoryVersionControl     Category = "version_control"
	CategoryTesting            Category = "testing"
	CategoryDataML             Category = "data_ml"
	CategoryMobile             Category = "mobile"
	CategoryAPIProtocols       Category = "api_protocols"
	CategoryArchitecture       Category = "architecture"
	CategoryMethodologies      Category = "methodologies"
	CategorySecurity           Category = "security"
	CategoryProjectTools       Category = "project_tools"
	CategoryOtherTools         Category = "other_tools"
)

// categoryOrder fixes the iteration order of techSkills.
var categoryOrder = []Category{
	CategoryLanguages,
	CategoryFrontendFrameworks,
	CategoryBackendFrameworks,
	CategoryDatabases,
	CategoryCloudAWS,
	CategoryCloudGCP,
	CategoryCloudAzure,
	CategoryDevopsTools,
	CategoryVersionControl,
	CategoryTesting,
	CategoryDataML,
	CategoryMobile,
	CategoryAPIProtocols,
	CategoryArchitecture,
	CategoryMethodologies,
	CategorySecurity,
	CategoryProjectTools,
	CategoryOtherTools,
}

// techSkills maps each category to its terms in canonical casing.
var techSkills = map[Category][]string{
	CategoryLanguages: {
		"JavaScript", "TypeScript", "Python", "Java", "Go", "Golang", "Rust", "C", "C++", "C#", "Ruby",
		"PHP", "Swift", "Kotlin", "Scala", "R", "Perl", "Haskell", "Elixir", "Erlang", "Clojure", "Lua",
		"Dart", "Objective-C", "MATLAB", "Shell", "Bash", "PowerShell", "SQL", "PL/SQL", "T-SQL",
		"GraphQL", "HTML", "CSS", "SASS", "SCSS", "Less", "Solidity", "VHDL", "Verilog", "Assembly",
		"Groovy", "F#", "OCaml", "Julia", "Zig", "Nim", "Crystal", "CoffeeScript", "ActionScript",
		"Apex", "ABAP", "COBOL", "Fortran", "Prolog", "Lisp", "Scheme", "Racket", "Tcl", "Ada", "Pascal",
		"Delphi",
	},
	CategoryFrontendFrameworks: {
		"React", "React.js", "ReactJS", "Angular", "AngularJS", "Vue", "Vue.js", "VueJS", "Next.js",
		"NextJS", "Nuxt.js", "NuxtJS", "Svelte", "SvelteKit", "Gatsby", "Remix", "Astro", "Ember.js",
		"EmberJS", "Backbone.js", "Alpine.js", "Solid.js", "SolidJS", "Preact", "Lit", "Stencil",
		"jQuery", "Bootstrap", "Tailwind CSS", "Tailwind", "Material UI", "MUI", "Chakra UI",
		"Ant Design", "Semantic UI", "Foundation", "Bulma", "Styled Components", "Emotion",
		"CSS Modules", "Radix UI", "shadcn/ui", "Headless UI", "Framer Motion", "GSAP", "Three.js",
		"D3.js", "D3", "Chart.js", "Recharts", "Highcharts", "Plotly", "Mapbox",
	},
	CategoryBackendFrameworks: {
		"Express", "Express.js", "ExpressJS", "Fastify", "Koa", "Hapi", "NestJS", "Nest.js", "Django",
		"Flask", "FastAPI", "Tornado", "Pyramid", "Bottle", "Sanic", "Spring", "Spring Boot",
		"Spring MVC", "Quarkus", "Micronaut", "Vert.x", "ASP.NET", ".NET", ".NET Core",
		"Entity Framework", "Blazor", "Ruby on Rails", "Rails", "Sinatra", "Hanami", "Laravel",
		"Symfony", "CodeIgniter", "CakePHP", "Slim", "Gin", "Echo", "Fiber", "Chi", "Gorilla Mux",
		"Actix", "Axum", "Rocket", "Warp", "Phoenix", "Plug", "Play Framework", "Akka", "Ktor", "gRPC",
		"tRPC", "Hono",
	},
	CategoryDatabases: {
		"PostgreSQL", "Postgres", "MySQL", "MariaDB", "SQLite", "Oracle", "SQL Server", "MSSQL",
		"MongoDB", "Mongoose", "DynamoDB", "Cassandra", "CouchDB", "CouchBase", "Redis", "Memcached",
		"Elasticsearch", "OpenSearch", "Solr", "Neo4j", "ArangoDB", "InfluxDB", "TimescaleDB",
		"ClickHouse", "Firebase", "Firestore", "Supabase", "PlanetScale", "Neon", "Prisma", "TypeORM",
		"Sequelize", "Knex", "Drizzle", "SQLAlchemy", "Hibernate", "MyBatis", "ActiveRecord",
		"Snowflake", "BigQuery", "Redshift", "Athena", "Databricks", "HBase", "Cockroach", "CockroachDB",
		"Vitess", "TiDB", "FaunaDB", "RethinkDB", "LevelDB", "RocksDB",
	},
	CategoryCloudAWS: {
		"AWS", "Amazon Web Services", "EC2", "S3", "Lambda", "API Gateway", "CloudFront", "Route 53",
		"RDS", "Aurora", "DynamoDB", "ElastiCache", "ECS", "EKS", "Fargate", "SQS", "SNS", "Kinesis",
		"Step Functions", "CloudFormation", "CDK", "AWS CDK", "SAM", "Amplify", "IAM", "Cognito",
		"Secrets Manager", "Parameter Store", "CloudWatch", "X-Ray", "EventBridge", "AppSync",
		"Redshift", "Athena", "Glue", "EMR", "SageMaker", "CodePipeline", "CodeBuild", "CodeDeploy",
		"VPC", "ELB", "ALB", "NLB", "WAF", "Shield",
	},
	CategoryCloudGCP: {
		"GCP", "Google Cloud", "Google Cloud Platform", "Cloud Run", "Cloud Functions", "GKE",
		"App Engine", "Compute Engine", "Cloud Storage", "BigQuery", "Cloud SQL", "Firestore",
		"Cloud Spanner", "Pub/Sub", "Cloud Dataflow", "Cloud Composer", "Vertex AI", "Cloud Build",
		"Artifact Registry", "Cloud CDN", "Cloud Armor", "Identity Platform",
	},
	CategoryCloudAzure: {
		"Azure", "Microsoft Azure", "Azure Functions", "Azure App Service", "Azure DevOps", "AKS",
		"Azure Kubernetes Service", "Azure SQL", "Cosmos DB", "Azure Blob Storage", "Azure Service Bus",
		"Azure Event Hubs", "Azure AD", "Azure Active Directory", "Azure Pipelines", "Azure Monitor",
		"Azure Key Vault", "Logic Apps", "Power Automate", "Azure Cognitive Services",
	},
	CategoryDevopsTools: {
		"Docker", "Kubernetes", "K8s", "Helm", "Istio", "Linkerd", "Terraform", "Pulumi", "Ansible",
		"Chef", "Puppet", "SaltStack", "Jenkins", "GitHub Actions", "GitLab CI", "CircleCI", "Travis CI",
		"ArgoCD", "Argo CD", "FluxCD", "Tekton", "Spinnaker", "Prometheus", "Grafana", "Datadog",
		"New Relic", "Splunk", "PagerDuty", "OpsGenie", "ELK Stack", "Logstash", "Kibana", "Jaeger",
		"Zipkin", "OpenTelemetry", "Sentry", "Nginx", "Apache", "Caddy", "HAProxy", "Traefik", "Envoy",
		"Vagrant", "Packer", "Consul", "Vault", "Nomad", "Podman", "Buildah", "Skaffold", "Kustomize",
		"Rancher",
	},
	CategoryVersionControl: {
		"Git", "GitHub", "GitLab", "Bitbucket", "SVN", "Subversion", "Mercurial", "Perforce",
		"Azure Repos",
	},
	CategoryTesting: {
		"Jest", "Mocha", "Chai", "Jasmine", "Karma", "Vitest", "Cypress", "Playwright", "Selenium",
		"WebdriverIO", "Puppeteer", "Testing Library", "React Testing Library", "Enzyme", "pytest",
		"unittest", "nose", "Robot Framework", "JUnit", "TestNG", "Mockito", "Spock", "RSpec",
		"Minitest", "Capybara", "PHPUnit", "Pest", "Postman", "Newman", "Insomnia", "k6", "Locust",
		"JMeter", "SonarQube", "CodeClimate", "Codecov", "Coveralls", "Storybook", "Chromatic",
	},
	CategoryDataML: {
		"Pandas", "NumPy", "SciPy", "Matplotlib", "Seaborn", "TensorFlow", "PyTorch", "Keras",
		"scikit-learn", "sklearn", "XGBoost", "LightGBM", "CatBoost", "Hugging Face", "Transformers",
		"NLTK", "spaCy", "Gensim", "OpenCV", "PIL", "Pillow", "Apache Spark", "Spark", "PySpark",
		"Hadoop", "MapReduce", "Airflow", "Apache Airflow", "dbt", "Dagster", "Prefect", "Kafka",
		"Apache Kafka", "RabbitMQ", "Celery", "Jupyter", "Jupyter Notebook", "Google Colab", "MLflow",
		"Kubeflow", "Weights & Biases", "WandB", "OpenAI", "LangChain", "LlamaIndex", "Pinecone",
		"Weaviate", "ChromaDB", "FAISS", "Milvus", "Qdrant", "Ray", "Dask", "Modin", "Polars", "Vaex",
		"ONNX", "TensorRT", "Triton",
	},
	CategoryMobile: {
		"React Native", "Flutter", "Dart", "SwiftUI", "UIKit", "Jetpack Compose", "Android SDK",
		"iOS SDK", "Xcode", "Expo", "Ionic", "Capacitor", "Cordova", "PhoneGap", "Xamarin", "MAUI",
		"NativeScript", "KMM", "Kotlin Multiplatform",
	},
	CategoryAPIProtocols: {
		"REST", "RESTful", "REST API", "GraphQL", "gRPC", "WebSocket", "WebSockets", "SOAP", "JSON-RPC",
		"XML-RPC", "Protocol Buffers", "Protobuf", "OpenAPI", "Swagger", "API Gateway", "OAuth",
		"OAuth2", "JWT", "SSE", "Server-Sent Events", "MQTT", "AMQP", "WebRTC", "HTTP/2", "HTTP/3",
		"QUIC",
	},
	CategoryArchitecture: {
		"Microservices", "Monolith", "Serverless", "Event-Driven", "Domain-Driven Design", "DDD", "CQRS",
		"Event Sourcing", "SOA", "Service-Oriented Architecture", "Hexagonal Architecture",
		"Clean Architecture", "MVC", "MVVM", "MVP", "Pub/Sub", "Message Queue", "Message Broker",
		"Load Balancing", "Caching", "CDN", "Rate Limiting", "Circuit Breaker", "Saga Pattern",
		"Strangler Fig", "API-First", "Design Patterns", "SOLID",
	},
	CategoryMethodologies: {
		"Agile", "Scrum", "Kanban", "SAFe", "Lean", "CI/CD", "Continuous Integration",
		"Continuous Deployment", "Continuous Delivery", "TDD", "Test-Driven Development", "BDD",
		"Behavior-Driven Development", "DevOps", "DevSecOps", "SRE", "Site Reliability Engineering",
		"GitOps", "Infrastructure as Code", "IaC", "Pair Programming", "Code Review", "Mob Programming",
		"Waterfall", "Extreme Programming", "XP", "Design Thinking", "Sprint Planning", "Retrospective",
	},
	CategorySecurity: {
		"OWASP", "SSL", "TLS", "HTTPS", "SSH", "VPN", "Encryption", "Hashing", "AES", "RSA", "bcrypt",
		"Penetration Testing", "Pen Testing", "Vulnerability Assessment", "SAST", "DAST", "IAST", "SCA",
		"RBAC", "ABAC", "Zero Trust", "MFA", "SSO", "SAML", "Snyk", "Veracode", "Trivy", "Falco",
		"SOC 2", "GDPR", "HIPAA", "PCI DSS", "ISO 27001", "CIS Benchmarks", "NIST",
	},
	CategoryProjectTools: {
		"Jira", "Confluence", "Asana", "Trello", "Linear", "Notion", "Monday.com", "ClickUp", "Basecamp",
		"Shortcut", "Figma", "Sketch", "Adobe XD", "InVision", "Zeplin", "Miro", "Slack",
		"Microsoft Teams", "Zoom", "Discord",
	},
	CategoryOtherTools: {
		"Webpack", "Vite", "Rollup", "Parcel", "esbuild", "SWC", "Babel", "ESLint", "Prettier", "Husky",
		"lint-staged", "npm", "yarn", "pnpm", "Bun", "Deno", "Node.js", "NodeJS", "Vercel", "Netlify",
		"Heroku", "Railway", "Render", "Fly.io", "Cloudflare", "Cloudflare Workers", "Akamai", "Stripe",
		"PayPal", "Twilio", "SendGrid", "Mailgun", "Auth0", "Okta", "Clerk", "NextAuth", "Contentful",
		"Sanity", "Strapi", "WordPress", "Ghost", "LaunchDarkly", "Optimizely", "Segment", "Mixpanel",
		"Amplitude", "Google Analytics", "Hotjar", "FullStory", "Redis", "Celery", "Sidekiq", "Electron",
		"Tauri", "Unity", "Unreal Engine", "Godot", "Blender", "Maya",
	},
}

var actionVerbs = []string{
	"achieved", "administered", "analyzed", "architected", "automated", "built", "championed",
	"coached", "collaborated", "consolidated", "contributed", "coordinated", "created", "debugged",
	"decreased", "delivered", "deployed", "designed", "developed", "directed", "drove", "eliminated",
	"enabled", "engineered", "enhanced", "established", "evaluated", "executed", "expanded",
	"facilitated", "formulated", "generated", "grew", "headed", "identified", "implemented",
	"improved", "increased", "influenced", "initiated", "innovated", "integrated", "introduced",
	"launched", "led", "leveraged", "maintained", "managed", "mentored", "migrated", "modernized",
	"monitored", "negotiated", "optimized", "orchestrated", "overhauled", "oversaw", "partnered",
	"performed", "piloted", "pioneered", "planned", "presented", "prioritized", "produced",
	"programmed", "proposed", "published", "rebuilt", "reduced", "refactored", "refined",
	"re-engineered", "reorganized", "resolved", "restructured", "revamped", "scaled", "secured",
	"simplified", "solved", "spearheaded", "standardized", "streamlined", "strengthened",
	"supervised", "supported", "tested", "trained", "transformed", "troubleshot", "unified",
	"upgraded", "utilized", "validated",
}

var softSkills = []string{
	"communication", "leadership", "teamwork", "problem-solving", "problem solving",
	"critical thinking", "time management", "adaptability", "creativity", "collaboration",
	"attention to detail", "work ethic", "interpersonal", "decision-making", "decision making",
	"conflict resolution", "emotional intelligence", "negotiation", "presentation", "public speaking",
	"mentoring", "mentorship", "project management", "strategic thinking", "analytical",
	"analytical skills", "organizational", "organization", "multitasking", "self-motivated",
	"customer-focused", "customer focus", "stakeholder management", "cross-functional",
	"cross functional", "team building", "delegation", "initiative", "proactive", "accountability",
	"resilience", "flexibility", "empathy", "persuasion", "active listening", "written communication",
	"verbal communication",
}

var requiredTriggers = []string{
	"must have", "required", "requirements", "minimum", "essential", "mandatory", "need", "needs",
	"shall", "must", "expect", "qualifications", "responsibilities",
}

var niceToHaveTriggers = []string{
	"preferred", "nice to have", "nice-to-have", "bonus", "plus", "desirable", "ideally",
	"advantageous", "a plus", "would be nice", "optional", "extra credit", "not required",
	"familiarity with", "exposure to", "experience with",
}

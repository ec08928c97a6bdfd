package codegen

const expressAppTemplate = `{{if .TypeScript}}import express from 'express';
import cors from 'cors';
import helmet from 'helmet';
import dotenv from 'dotenv';

dotenv.config();
{{else}}const express = require('express');
const cors = require('cors');
const helmet = require('helmet');
require('dotenv').config();
{{end}}
const app = express();
const PORT = process.env.PORT || 3000;

// Middleware
app.use(helmet());
app.use(cors());
app.use(express.json());

// Routes
{{range .Project.Schema}}app.use('/api/{{route .}}', require('./routes/{{route .}}'));
{{end}}
// Health check
app.get('/health', (req, res) => {
  res.json({ status: 'OK', timestamp: new Date().toISOString() });
});

app.listen(PORT, () => {
  console.log(` + "`" + `Server running on http://localhost:${PORT}` + "`" + `);
});

{{if .TypeScript}}export default app;{{else}}module.exports = app;{{end}}
`

const expressRouteTemplate = `{{if .TypeScript}}import { Router } from 'express';

const router = Router();
{{else}}const express = require('express');

const router = express.Router();
{{end}}
// CRUD operations for {{.Table.Name}}
router.get('/', (req, res) => {
  res.json({ message: 'Get all {{.Table.Name}}', data: [] });
});

router.get('/:id', (req, res) => {
  res.json({ message: ` + "`" + `Get {{.Table.Name}} ${req.params.id}` + "`" + ` });
});

router.post('/', (req, res) => {
  res.status(201).json({ message: '{{.Table.Name}} created', data: req.body });
});

router.put('/:id', (req, res) => {
  res.json({ message: ` + "`" + `{{.Table.Name}} ${req.params.id} updated` + "`" + ` });
});

router.delete('/:id', (req, res) => {
  res.json({ message: ` + "`" + `{{.Table.Name}} ${req.params.id} deleted` + "`" + ` });
});

{{if .TypeScript}}export default router;{{else}}module.exports = router;{{end}}
`

const envTemplate = `PORT=3000
NODE_ENV=development
DATABASE_URL={{.Type}}://username:password@localhost:5432/database_name
`

const readmeTemplate = `# {{.Project.Name}}

{{.Project.Description}}

Generated with RhinoBack AI using {{.Framework}}.

## API Endpoints

{{range .Project.Schema}}- /api/{{route .}}
{{end}}
## Setup

1. npm install
2. Configure .env file
3. npm run dev
`

const tsConfig = `{
  "compilerOptions": {
    "target": "es2020",
    "module": "commonjs",
    "outDir": "./dist",
    "rootDir": "./src",
    "strict": true,
    "esModuleInterop": true
  }
}`
